// Package installer places the skill document into each requested platform's
// location and removes it again. Every platform is processed independently:
// a failure is recorded in the returned Report and the batch carries on.
package installer
