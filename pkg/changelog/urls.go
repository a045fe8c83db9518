package changelog

import "regexp"

var (
	cveRE = regexp.MustCompile(`(?i)CVE-\d{4}-\d{4,}`)

	// Launchpad references: "LP: #1234, #5678".
	lpRE    = regexp.MustCompile(`(?i)LP:\s+(?:[,\s]*#\d+)+`)
	lpBugRE = regexp.MustCompile(`#(\d+)`)

	// Debian bug closures per Debian Policy chapter 4.4.
	closesRE  = regexp.MustCompile(`(?i)closes:\s*(?:(?:bug)?#?\s?\d+(?:,\s*)?)+`)
	closesNum = regexp.MustCompile(`\d+`)
)

// CVEURLs extracts CVE references from a changelog and returns links
// into the NVD database.
func CVEURLs(text string) []string {
	var urls []string
	for _, cve := range cveRE.FindAllString(text, -1) {
		urls = append(urls, "https://web.nvd.nist.gov/view/vuln/detail?vulnId="+cve)
	}

	return urls
}

// BugURLs extracts Launchpad and Debian bug-closure references and
// returns links to the respective trackers. The closes syntax follows
// Debian Policy chapter 4.4.
func BugURLs(text string) []string {
	var urls []string

	for _, ref := range lpRE.FindAllString(text, -1) {
		for _, m := range lpBugRE.FindAllStringSubmatch(ref, -1) {
			urls = append(urls, "https://bugs.launchpad.net/bugs/"+m[1])
		}
	}

	for _, ref := range closesRE.FindAllString(text, -1) {
		for _, num := range closesNum.FindAllString(ref, -1) {
			urls = append(urls, "https://bugs.debian.org/cgi-bin/bugreport.cgi?bug="+num)
		}
	}

	return urls
}
