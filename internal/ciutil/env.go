package ciutil

import (
	"net/url"
	"os"
	"strings"
)

// Environment variables used to detect the CI provider.
const (
	EnvCI               = "CI"
	EnvGitHubActions    = "GITHUB_ACTIONS"
	EnvGitHubWorkspace  = "GITHUB_WORKSPACE"
	EnvGitHubRunID      = "GITHUB_RUN_ID"
	EnvGitHubSHA        = "GITHUB_SHA"
	EnvGitLabCI         = "GITLAB_CI"
	EnvGitLabProjectDir = "CI_PROJECT_DIR"
	EnvGitLabPipelineID = "CI_PIPELINE_ID"
	EnvGitLabCommitSHA  = "CI_COMMIT_SHA"
	EnvJenkinsURL       = "JENKINS_URL"
	EnvTravisCI         = "TRAVIS"
	EnvCircleCI         = "CIRCLECI"
)

// CIEnvVars lists every variable that IsCI inspects.
var CIEnvVars = []string{EnvCI, EnvGitHubActions, EnvGitLabCI, EnvJenkinsURL, EnvTravisCI, EnvCircleCI}

// IsCI returns true if the current environment is a CI environment.
// It checks for common CI environment variables across different CI providers.
func IsCI() bool {
	for _, name := range CIEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// IsGitHubActions returns true if the current environment is GitHub Actions.
func IsGitHubActions() bool {
	return os.Getenv(EnvGitHubActions) != "" && os.Getenv(EnvGitHubWorkspace) != ""
}

// IsGitLabCI returns true if the current environment is GitLab CI.
func IsGitLabCI() bool {
	return os.Getenv(EnvGitLabCI) != "" && os.Getenv(EnvGitLabProjectDir) != ""
}

// Provider returns a short name for the CI system, "generic" for an
// unrecognised CI and "" when not running in CI.
func Provider() string {
	switch {
	case IsGitHubActions():
		return "github_actions"
	case IsGitLabCI():
		return "gitlab_ci"
	case os.Getenv(EnvJenkinsURL) != "":
		return "jenkins"
	case os.Getenv(EnvTravisCI) != "":
		return "travis"
	case os.Getenv(EnvCircleCI) != "":
		return "circleci"
	case IsCI():
		return "generic"
	default:
		return ""
	}
}

// Metadata returns build identifiers for the current CI run, suitable for
// attaching to log records. It returns an empty map outside CI.
func Metadata() map[string]string {
	md := map[string]string{}
	provider := Provider()
	if provider == "" {
		return md
	}
	md["ci_provider"] = provider

	switch provider {
	case "github_actions":
		setIfPresent(md, "ci_build", EnvGitHubRunID)
		setIfPresent(md, "ci_commit", EnvGitHubSHA)
	case "gitlab_ci":
		setIfPresent(md, "ci_build", EnvGitLabPipelineID)
		setIfPresent(md, "ci_commit", EnvGitLabCommitSHA)
	}
	return md
}

func setIfPresent(md map[string]string, key, envVar string) {
	if v := os.Getenv(envVar); v != "" {
		md[key] = v
	}
}

// MaskSensitiveValue masks credentials in connection URLs (amqp, redis,
// postgres and similar) and shortens values that look like keys or tokens, so
// they can be logged safely.
func MaskSensitiveValue(value string) string {
	if strings.Contains(value, "://") {
		if u, err := url.Parse(value); err == nil && u.User != nil {
			if _, hasPassword := u.User.Password(); hasPassword {
				u.User = url.UserPassword(u.User.Username(), "****")
				return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
			}
			return value
		}
	}

	lower := strings.ToLower(value)
	if len(value) > 8 && (strings.Contains(lower, "key") ||
		strings.Contains(lower, "token") ||
		strings.Contains(lower, "secret")) {
		return value[:4] + "****" + value[len(value)-4:]
	}

	return value
}
