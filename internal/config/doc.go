// Package config manages user-level settings stored at
// ~/.aem-workflow-skill/config.yaml. Every key can also be supplied through
// an AEM_SKILL_<KEY> environment variable.
package config
