package providers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"talkmigrate/internal/models"
	"talkmigrate/internal/structures"

	"github.com/charmbracelet/lipgloss"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	summaryLabelStyle = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("244"))
	summaryWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// ConfirmProviderInterface gates the destructive commit on an operator decision.
type ConfirmProviderInterface interface {
	Confirm(report *models.Report) (bool, error)
}

type ConfirmProvider struct {
	in        io.Reader
	out       io.Writer
	assumeYes bool
}

func NewConfirmProvider(conf *structures.Config) ConfirmProviderInterface {
	return &ConfirmProvider{in: os.Stdin, out: os.Stdout, assumeYes: conf.AssumeYes}
}

// NewConfirmProviderWithIO is used where the prompt is not on the terminal.
func NewConfirmProviderWithIO(in io.Reader, out io.Writer, assumeYes bool) ConfirmProviderInterface {
	return &ConfirmProvider{in: in, out: out, assumeYes: assumeYes}
}

func (cp *ConfirmProvider) Confirm(report *models.Report) (bool, error) {
	fmt.Fprintln(cp.out, RenderReport(report))
	if cp.assumeYes {
		return true, nil
	}

	fmt.Fprint(cp.out, "Replace the target collections? [y/N] ")
	answer, err := bufio.NewReader(cp.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// RenderReport formats the reconciliation summary shown before the commit.
func RenderReport(r *models.Report) string {
	row := func(label string, c models.CollectionReport) string {
		return summaryLabelStyle.Render(label) + fmt.Sprintf("read %d, migrated %d, skipped %d, dropped %d", c.Read, c.Migrated, c.Skipped, c.Dropped)
	}
	lines := []string{
		summaryTitleStyle.Render("Ready to insert into the target database"),
		row("stories", r.Stories),
		row("users", r.Users),
		row("comments", r.Comments),
		row("actions", r.Actions),
		summaryLabelStyle.Render("urls") + fmt.Sprintf("rewritten %d, redirected %d", r.URLsRewritten, r.URLsRedirected),
		summaryLabelStyle.Render("deleted") + fmt.Sprintf("%d users scheduled for deletion", r.DeletedUsers),
	}
	if n := len(r.Dangling); n > 0 {
		lines = append(lines, summaryWarnStyle.Render(fmt.Sprintf("%d dangling references, see the logs", n)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
