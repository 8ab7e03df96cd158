package botdefense

import (
	"net/http"
	"strings"
)

// known bot user-agent patterns (case-insensitive matching)
var botPatterns = []string{
	// generic bot indicators
	"bot",
	"crawler",
	"spider",
	"scraper",
	// headless browsers
	"headless",
	"phantomjs",
	"puppeteer",
	"playwright",
	"selenium",
	// programming libraries
	"python-requests",
	"python-urllib",
	"go-http-client",
	"okhttp",
	"scrapy",
}

// legitimate browser indicators
var browserIndicators = []string{
	"mozilla",
	"chrome",
	"safari",
	"firefox",
	"edge",
}

// contains detected bot indicators
type BotSignals struct {
	EmptyUserAgent  bool
	BotPatternMatch string
	MissingHeaders  []string
	Score           int
}

// scores a form submission for automation indicators (higher = more likely bot)
func DetectBot(r *http.Request) *BotSignals {
	signals := &BotSignals{}
	userAgent := r.Header.Get("User-Agent")
	userAgentLower := strings.ToLower(userAgent)

	if userAgent == "" {
		signals.EmptyUserAgent = true
		signals.Score += 50
	} else if len(userAgent) < 20 {
		signals.Score += 20
	}

	for _, pattern := range botPatterns {
		if strings.Contains(userAgentLower, pattern) {
			signals.BotPatternMatch = pattern
			signals.Score += 40
			break
		}
	}

	// browsers always send these with a form post
	for _, header := range []string{"Accept", "Accept-Language"} {
		if r.Header.Get(header) == "" {
			signals.MissingHeaders = append(signals.MissingHeaders, header)
			signals.Score += 10
		}
	}

	// reduce score if it looks like a real browser
	if signals.BotPatternMatch == "" && hasBrowserIndicator(userAgentLower) && len(signals.MissingHeaders) == 0 {
		signals.Score = max(signals.Score-20, 0)
	}

	return signals
}

// checks if the user-agent contains browser indicators
func hasBrowserIndicator(userAgentLower string) bool {
	for _, indicator := range browserIndicators {
		if strings.Contains(userAgentLower, indicator) {
			return true
		}
	}
	return false
}

// checks if the request path looks like probing
func IsSuspiciousPath(path string) bool {
	pathLower := strings.ToLower(path)

	suspiciousPatterns := []string{
		".php",
		".asp",
		".jsp",
		".cgi",
		"..%2f", // path traversal
		"../",
		"%00", // null byte
		"<script",
		"union+select",
	}

	for _, pattern := range suspiciousPatterns {
		if strings.Contains(pathLower, pattern) {
			return true
		}
	}

	return false
}
