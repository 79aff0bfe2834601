package azure

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// KeyPrefixLen is how many characters of a secret value are ever shown.
const KeyPrefixLen = 20

// Redact truncates a secret to its display prefix followed by a marker.
// Full key values must never reach the terminal.
func Redact(value string) string {
	runes := []rune(value)
	if len(runes) > KeyPrefixLen {
		runes = runes[:KeyPrefixLen]
	}
	return string(runes) + "..."
}

// Formatter renders azure command reports to a writer.
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a formatter writing to out.
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// Printf prints a plain line to the report output.
func (f *Formatter) Printf(format string, v ...interface{}) {
	fmt.Fprintf(f.out, format, v...)
}

// Successf prints a success line with a check marker.
func (f *Formatter) Successf(format string, v ...interface{}) {
	fmt.Fprintf(f.out, "%s %s\n", successStyle.Render("✓"), fmt.Sprintf(format, v...))
}

// Failuref prints a failure line with a cross marker.
func (f *Formatter) Failuref(format string, v ...interface{}) {
	fmt.Fprintf(f.out, "%s %s\n", failureStyle.Render("✗"), fmt.Sprintf(format, v...))
}

// Failure prints the failure message of a Result.
func (f *Formatter) Failure(res Result) {
	f.Failuref("Error: %s", res.Err)
}

func (f *Formatter) header(title string) {
	fmt.Fprintf(f.out, "\n%s\n%s\n", headerStyle.Render(title), strings.Repeat("-", 60))
}

// Subscriptions renders the subscription listing.
func (f *Formatter) Subscriptions(subs []Subscription) {
	f.header("Azure Subscriptions")
	for _, sub := range subs {
		state := successStyle.Render("✓")
		if sub.State != "Enabled" {
			state = failureStyle.Render("✗")
		}
		suffix := ""
		if sub.IsDefault {
			suffix = " (DEFAULT)"
		}
		fmt.Fprintf(f.out, "  %s %s%s\n", state, sub.Name, suffix)
		fmt.Fprintf(f.out, "    %s\n", dimStyle.Render("ID: "+sub.ID))
	}
}

// Account renders the current account report.
func (f *Formatter) Account(acc Account) {
	f.header("Current Azure Account")
	fmt.Fprintf(f.out, "  Subscription: %s\n", acc.Name)
	fmt.Fprintf(f.out, "  ID: %s\n", acc.ID)
	fmt.Fprintf(f.out, "  Tenant: %s\n", acc.TenantID)
	user := acc.User.Name
	if user == "" {
		user = "N/A"
	}
	fmt.Fprintf(f.out, "  User: %s\n", user)
}

// Groups renders the resource-group listing.
func (f *Formatter) Groups(groups []ResourceGroup) {
	f.header("Resource Groups")
	for _, rg := range groups {
		fmt.Fprintf(f.out, "  • %s (%s)\n", rg.Name, rg.Location)
	}
}

// Resources renders the resource listing, scoped to a group when one was
// given.
func (f *Formatter) Resources(resources []Resource, group string) {
	title := "Resources"
	if group != "" {
		title = "Resources in " + group
	}
	f.header(title)
	for _, res := range resources {
		fmt.Fprintf(f.out, "  • %s\n", res.Name)
		fmt.Fprintf(f.out, "    Type: %s\n", res.Type)
		fmt.Fprintf(f.out, "    Location: %s\n\n", res.Location)
	}
}

// CognitiveKeys renders the redacted key pair of a cognitive account.
func (f *Formatter) CognitiveKeys(name string, keys CognitiveKeys) {
	f.header("API Keys for " + name)
	fmt.Fprintf(f.out, "  Key1: %s\n", Redact(keys.Key1))
	fmt.Fprintf(f.out, "  Key2: %s\n", Redact(keys.Key2))
}

// StorageKeys renders the redacted access keys of a storage account.
func (f *Formatter) StorageKeys(name string, keys []StorageKey) {
	f.header("Storage Keys for " + name)
	for _, key := range keys {
		fmt.Fprintf(f.out, "  %s: %s\n", key.KeyName, Redact(key.Value))
	}
}

// Deployments renders the model deployment listing for a resource.
func (f *Formatter) Deployments(name string, deps []Deployment) {
	f.header("Deployments for " + name)
	for _, dep := range deps {
		model := dep.Properties.Model.Name
		if model == "" {
			model = "N/A"
		}
		fmt.Fprintf(f.out, "  • %s\n", dep.Name)
		fmt.Fprintf(f.out, "    Model: %s\n", model)
	}
}

// Raw prints unstructured command output. When the output was supposed
// to be JSON but did not decode, the fallback is labeled instead of
// passed off as structured data.
func (f *Formatter) Raw(res Result) {
	if res.DecodeErr != nil {
		fmt.Fprintf(f.out, "%s\n", dimStyle.Render("(output was not valid JSON, showing raw text)"))
	}
	out := strings.TrimRight(res.Raw, "\n")
	if out != "" {
		fmt.Fprintln(f.out, out)
	}
}
