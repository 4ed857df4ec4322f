// Package integrations describes the AI assistants the skill can be installed
// into. Each Platform has a fixed Descriptor naming where its file lives in a
// project (and optionally under the home directory) and which Transformer
// adapts the skill document to the platform's conventions.
package integrations
