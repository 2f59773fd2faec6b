package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformRemoteOK   Platform = "remoteok"
	PlatformUnknown    Platform = "unknown"
)

// platformHosts maps host suffixes to platforms. Order matters only for overlapping suffixes.
var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
	{"ashbyhq.com", PlatformAshby},
	{"linkedin.com", PlatformLinkedIn},
	{"remoteok.com", PlatformRemoteOK},
	{"remoteok.io", PlatformRemoteOK},
}

// DetectPlatform identifies the job board from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, ph := range platformHosts {
		if host == ph.suffix || strings.HasSuffix(host, "."+ph.suffix) {
			return ph.platform
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a platform, most specific first.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		}
	case PlatformLever:
		return []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		}
	case PlatformWorkday:
		return []string{
			"[data-automation-id='jobDescription']",
			".job-description",
		}
	case PlatformAshby:
		return []string{
			"[class*='descriptionText']",
			"main",
		}
	case PlatformLinkedIn:
		return []string{
			".show-more-less-html__markup",
			".description__text",
			".jobs-description",
		}
	case PlatformRemoteOK:
		return []string{
			".description",
			"[itemprop='description']",
			".expandContents",
		}
	default:
		return JobPostingSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		"#application-form",
		".application-form",
		".application--container",
		".apply-button-container",
		"[data-testid='application-form']",
		".voluntary-disclosure",
		".eeo-statement",
		".eeo-section",
		"[data-testid='eeo']",
		".legal-disclosure",
		".self-identification",
		".social-share",
		".share-buttons",
		".social-links",
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformGreenhouse:
		return append(common,
			".application--wrapper",
			".voluntary-self-id",
			".voluntary-self-id-wrapper",
			"#usa_self_id_section",
			".post-apply",
		)
	case PlatformLever:
		return append(common,
			".apply-section",
			".lever-application-form",
			".posting-apply",
		)
	case PlatformWorkday:
		return append(common,
			"[data-automation-id='applyButton']",
			".application-section",
		)
	case PlatformLinkedIn:
		return append(common,
			".top-card-layout__cta-container",
			".similar-jobs",
			".show-more-less-html__button",
		)
	case PlatformRemoteOK:
		return append(common,
			".apply_button",
			".company_profile",
		)
	default:
		return common
	}
}
