// Package observability renders API data as boxed text for the terminal.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/dashboard"
	"github.com/jonathan/resume-analyzer/internal/history"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/jobfeed"
	"github.com/jonathan/resume-analyzer/internal/resumefile"
	"github.com/jonathan/resume-analyzer/internal/session"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	ansiReset      = "\033[0m"
)

// Printer handles formatted output
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// WithColor enables ANSI colours for score badges.
func (p *Printer) WithColor(enabled bool) *Printer {
	p.color = enabled
	return p
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// Line prints a plain line outside any box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int, indent string) string {
	var lines []string
	for _, para := range strings.Split(strings.TrimSpace(text), "\n") {
		line := indent
		for _, word := range strings.Fields(para) {
			if line != indent && utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) > width {
				lines = append(lines, line)
				line = indent
			}
			if line != indent {
				line += " "
			}
			line += word
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (p *Printer) badge(b analysis.Badge) string {
	if !p.color {
		return b.Text()
	}
	return b.ANSI() + b.Text() + ansiReset
}

func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintAnalysis outputs the score badge and the decoded result of an analysis.
func (p *Printer) PrintAnalysis(a *types.Analysis, res analysis.Result) {
	if a == nil {
		return
	}

	var sb strings.Builder
	if a.Resume != nil {
		fmt.Fprintf(&sb, "Resume:   %s (#%d)\n", a.Resume.FileName, a.Resume.ID)
	}
	if t := a.CreatedTime(); !t.IsZero() {
		fmt.Fprintf(&sb, "Analyzed: %s\n", t.Format("2006-01-02 15:04"))
	}
	sb.WriteString("\n")

	writeList(&sb, "Strengths", res.Strengths, 10)
	writeList(&sb, "Missing skills", res.MissingSkills, 10)
	if s := strings.TrimSpace(res.Suggestions); s != "" {
		sb.WriteString("Suggestions:\n")
		sb.WriteString(wrap(s, boxWidth-4, "  "))
		sb.WriteString("\n")
	}
	if res.IsEmpty() {
		sb.WriteString("No details were returned for this analysis.\n")
	}

	p.printBox("MATCH SCORE  "+analysis.BadgeFor(a.Score).Text(), strings.TrimSuffix(sb.String(), "\n"))
	if p.color {
		p.Line("%s", p.badge(analysis.BadgeFor(a.Score)))
	}
}

// PrintResumes outputs the user's uploaded resumes.
func (p *Printer) PrintResumes(resumes []types.Resume) {
	if len(resumes) == 0 {
		p.printBox("MY RESUMES", "No resumes uploaded yet.\nRun 'upload <file>' to add one.")
		return
	}
	var sb strings.Builder
	for _, r := range resumes {
		fmt.Fprintf(&sb, "#%-6d %s\n", r.ID, r.FileName)
	}
	p.printBox(fmt.Sprintf("MY RESUMES (%d)", len(resumes)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistory outputs each resume with its past analyses, newest first.
func (p *Printer) PrintHistory(entries []history.Entry) {
	if len(entries) == 0 {
		p.printBox("ANALYSIS HISTORY", "No resumes uploaded yet.")
		return
	}

	var sb strings.Builder
	if latest := history.Latest(entries); latest != nil {
		fmt.Fprintf(&sb, "Latest: %s", analysis.BadgeFor(latest.Score).Text())
		if latest.Resume != nil {
			fmt.Fprintf(&sb, " (%s)", latest.Resume.FileName)
		}
		sb.WriteString("\n\n")
	}
	for i, e := range entries {
		fmt.Fprintf(&sb, "#%d  %s\n", e.Resume.ID, e.Resume.FileName)
		switch {
		case e.Err != nil:
			fmt.Fprintf(&sb, "    history unavailable: %v\n", e.Err)
		case e.Analyses == nil:
		case len(e.Analyses) == 0:
			sb.WriteString("    no analyses yet\n")
		default:
			count := min(len(e.Analyses), maxItemsToShow)
			for _, a := range e.Analyses[:count] {
				when := "unknown date"
				if t := a.CreatedTime(); !t.IsZero() {
					when = t.Format("2006-01-02")
				}
				fmt.Fprintf(&sb, "    %s  %-18s %s\n", when, analysis.BadgeFor(a.Score).Text(), firstLine(a.JobDescription, 20))
			}
			if len(e.Analyses) > count {
				fmt.Fprintf(&sb, "    ... and %d more\n", len(e.Analyses)-count)
			}
		}
		if i < len(entries)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("ANALYSIS HISTORY", strings.TrimSuffix(sb.String(), "\n"))
}

func firstLine(s string, width int) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return truncate(s, width)
}

// PrintProfile outputs the user's profile.
func (p *Printer) PrintProfile(profile *types.UserProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:     %s\n", profile.Name)
	fmt.Fprintf(&sb, "Email:    %s\n", profile.Email)
	for _, f := range []struct{ label, value string }{
		{"Headline", profile.Headline},
		{"Title", profile.CurrentJobTitle},
		{"Location", profile.Location},
		{"Website", profile.Website},
		{"Resume", profile.ResumeURL},
	} {
		if f.value != "" {
			fmt.Fprintf(&sb, "%-9s %s\n", f.label+":", f.value)
		}
	}
	if len(profile.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills:   %s\n", strings.Join(profile.Skills, ", "))
	}
	if about := strings.TrimSpace(profile.About); about != "" {
		sb.WriteString("\nAbout:\n")
		sb.WriteString(wrap(about, boxWidth-4, "  "))
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobs outputs a filtered and sorted job feed. limit of zero shows every job.
func (p *Printer) PrintJobs(feed *jobfeed.Feed, q jobfeed.Query, limit int) {
	if feed == nil {
		return
	}
	jobs := jobfeed.Apply(feed.Jobs, q)

	var sb strings.Builder
	sb.WriteString(jobfeed.Summary(jobs) + "\n")
	if feed.Sample {
		sb.WriteString("⚠ Showing sample jobs, live feed temporarily unavailable\n")
	}

	shown := jobs
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for i, j := range shown {
		sb.WriteString("\n")
		title := fmt.Sprintf("%d. %s · %s", i+1, j.Position, j.Company)
		if jobfeed.TopPick(i, q.Sort, j) {
			title = "★ Top Pick: " + title
		}
		sb.WriteString(title + "\n")
		fmt.Fprintf(&sb, "   %d%% match (%s)", j.MatchScore, jobfeed.MatchTier(j.MatchScore))
		if j.Location != "" {
			fmt.Fprintf(&sb, " · %s", j.Location)
		}
		sb.WriteString("\n")
		details := []string{j.JobType, j.Salary, j.Experience}
		if j.IsRemote() {
			details = append(details, "Remote")
		}
		fmt.Fprintf(&sb, "   %s\n", strings.Join(nonEmpty(details), " · "))
		if len(j.Tags) > 0 {
			fmt.Fprintf(&sb, "   Tags: %s\n", strings.Join(j.Tags, ", "))
		}
		if link := j.ApplyLink(); link != "" && link != "#" {
			fmt.Fprintf(&sb, "   %s\n", link)
		}
	}
	if len(jobs) > len(shown) {
		fmt.Fprintf(&sb, "\n... and %d more", len(jobs)-len(shown))
	}
	if len(jobs) == 0 {
		sb.WriteString("\nNo jobs match your search.")
	}

	p.printBox("JOB OPPORTUNITIES", strings.TrimSuffix(sb.String(), "\n"))
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PrintFileInfo outputs the pre-upload check of a resume file.
func (p *Printer) PrintFileInfo(info *resumefile.Info) {
	if info == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "File:     %s\n", info.Name)
	fmt.Fprintf(&sb, "Size:     %s\n", info.HumanSize())
	if info.MIME != "" {
		fmt.Fprintf(&sb, "Type:     %s\n", info.MIME)
	}
	if info.Pages > 0 {
		fmt.Fprintf(&sb, "Pages:    %d\n", info.Pages)
	}
	if info.TextLength > 0 {
		fmt.Fprintf(&sb, "Text:     %d characters\n", info.TextLength)
	}
	for _, w := range info.Warnings {
		fmt.Fprintf(&sb, "⚠ %s\n", w)
	}

	p.printBox("RESUME FILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDashboard outputs the profile, resumes and best job matches together.
func (p *Printer) PrintDashboard(d *dashboard.Dashboard) {
	if d == nil {
		return
	}
	p.PrintProfile(d.Profile)
	p.PrintResumes(d.Resumes)
	if d.Feed != nil {
		p.PrintJobs(&jobfeed.Feed{Jobs: d.TopJobs, Sample: d.Feed.Sample}, jobfeed.Query{Sort: jobfeed.SortMatch}, 0)
	}
}

// Status is what the status command reports.
type Status struct {
	APIURL        string
	TokenFile     string
	Authenticated bool
	Token         *session.TokenInfo
	TokenErr      error
	Now           time.Time
}

// PrintStatus outputs the session state.
func (p *Printer) PrintStatus(s Status) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "API:      %s\n", s.APIURL)
	if s.TokenFile != "" {
		fmt.Fprintf(&sb, "Token:    %s\n", s.TokenFile)
	}
	if !s.Authenticated {
		sb.WriteString("Session:  not logged in\n")
		if s.TokenErr != nil {
			fmt.Fprintf(&sb, "Stored token ignored: %v\n", s.TokenErr)
		}
		p.printBox("SESSION", strings.TrimSuffix(sb.String(), "\n"))
		return
	}

	sb.WriteString("Session:  logged in\n")
	switch {
	case s.Token != nil:
		if s.Token.Subject != "" {
			fmt.Fprintf(&sb, "User:     %s\n", s.Token.Subject)
		}
		now := s.Now
		if now.IsZero() {
			now = time.Now()
		}
		switch {
		case s.Token.ExpiresAt.IsZero():
			sb.WriteString("Expires:  unknown\n")
		case s.Token.Expired(now):
			fmt.Fprintf(&sb, "Expires:  expired %s (log in again)\n", s.Token.ExpiresAt.Local().Format("2006-01-02 15:04"))
		default:
			fmt.Fprintf(&sb, "Expires:  in %s\n", s.Token.Remaining(now).Round(time.Minute))
		}
	case s.TokenErr != nil:
		fmt.Fprintf(&sb, "Token details unavailable: %v\n", s.TokenErr)
	}

	p.printBox("SESSION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobDescription outputs where a job description came from.
func (p *Printer) PrintJobDescription(text string, meta *ingestion.Metadata) {
	if meta == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Source:   %s\n", meta.Source)
	if meta.URL != "" {
		fmt.Fprintf(&sb, "URL:      %s\n", meta.URL)
	}
	if meta.Path != "" {
		fmt.Fprintf(&sb, "Path:     %s\n", meta.Path)
	}
	if meta.Title != "" {
		fmt.Fprintf(&sb, "Title:    %s\n", meta.Title)
	}
	if meta.Platform != "" {
		fmt.Fprintf(&sb, "Platform: %s\n", meta.Platform)
	}
	fmt.Fprintf(&sb, "Length:   %d characters\n", meta.Chars)
	if preview := firstLine(text, boxWidth-14); preview != "" {
		fmt.Fprintf(&sb, "Preview:  %s\n", preview)
	}
	p.printBox("JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}
