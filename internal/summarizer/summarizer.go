package summarizer

import (
	"fmt"
	"strings"
)

// DocumentInput is one source PDF handed to a provider for the
// duration of a single summarization call.
type DocumentInput struct {
	// Name is the display name used for backend upload and citations.
	Name string
	// Data is the raw PDF bytes.
	Data []byte
}

// SectionSpec describes one fixed heading of the generated report.
type SectionSpec struct {
	Name        string
	Description string
	// FocusFiles names the files the model should prioritise for this
	// section. Empty means no specific file priority.
	FocusFiles []string
}

const baseInstructions = `You are a property law assistant. Analyse the uploaded PDFs
and complete every heading listed below. Cite each fact with the source file name
and page number whenever possible. Use 'No data found' only when the documents do
not address that heading at all.`

// leadInText precedes the attachments in every generation call.
const leadInText = "Review the attached lease/title pack and populate every section."

// sections is the fixed report catalog. Order and wording are part of
// the contract: identical instructions let two backends be compared
// like for like, and stable text keeps backend prompt caches warm.
var sections = []SectionSpec{
	{
		Name: "Rights Benefitting the Property",
		Description: `Summarise easements or rights in favour of the property, highlighting their scope and any conditions. Be as comprehensive as possible.
For each right or easement extracted, output the information in the following format:
Title:  title ID
Entry Type: the entry type of the right or easement
Entry Text: the verbatim text of the right or easement`,
	},
	{
		Name: "Rights to which the Property is subject",
		Description: `List burdens or rights over the property, such as access/utility rights benefitting others, with obligations.
For each right or easement extracted, output the information in the following format:
Title:  title ID
Entry Type: the entry type of the right or easement
Entry Text: the verbatim text of the right or easement`,
	},
	{
		Name: "Covenants",
		Description: `Capture positive/negative covenants and indicate parties responsible for compliance.
For each covenant extracted, output the information in the following format:
Title:  title ID
Entry Type: the entry type of the right or easement
Entry Text: the verbatim text of the right or easement`,
	},
	{
		Name:        "Title Guarantee",
		Description: "Identify the level of title guarantee offered and any qualifications mentioned.",
	},
	{
		Name:        "Land Registry Advisory",
		Description: "Include title number, class of title, restrictions or notices recorded on the register.",
	},
	{
		Name:        "Lease Details",
		Description: "Provide parties, term, commencement, demise description, and rent review mechanics.",
		FocusFiles:  []string{"lease.pdf"},
	},
	{
		Name:        "Leasehold Covenants",
		Description: "Summarise tenant and landlord covenants, referencing repairing, alteration, and assignment clauses.",
		FocusFiles:  []string{"lease.pdf"},
	},
	{
		Name:        "Ground Rent",
		Description: "State the amount, payment frequency, escalation pattern, and review dates.",
	},
	{
		Name: "Service Charge",
		Description: `State the current service charge that is payable.
Explain how the service charge is calculated, caps, excluded items, and payment timetable.`,
	},
	{
		Name:        "Major Works and Reserve Fund",
		Description: "Identify obligations for capital works/reserve contributions and any consultation requirements.",
	},
	{
		Name:        "Administrative Charges",
		Description: "Outline ad-hoc fees payable to the landlord/managing agent (licence to assign, notice fees, etc.).",
	},
	{
		Name:        "Building Insurance",
		Description: "Describe who insures, required cover, premium recovery, and reinstatement obligations.",
	},
	{
		Name:        "Enfranchisement",
		Description: "Note any enfranchisement restrictions or rights concerning the property.",
	},
	{
		Name:        "Notice To Landlord",
		Description: "Detail notice requirements on assignment, mortgage, or subletting including fees and addresses.",
	},
	{
		Name:        "Deed of Covenant",
		Description: "Specify when a deed of covenant is required and its execution/registration steps.",
	},
	{
		Name:        "Airbnb/Holiday Let Advisory",
		Description: "State whether short-term letting is allowed, prohibited, or subject to conditions.",
	},
}

// BuildPrompt renders the base instructions, the numbered section
// catalog, and the optional extra guidance into one instruction block.
// The same inputs always produce byte-identical output.
func BuildPrompt(extraPrompt string) string {
	var b strings.Builder
	b.WriteString(baseInstructions)

	for i, spec := range sections {
		fmt.Fprintf(&b, "\n%d. %s", i+1, spec.Name)
		b.WriteString("\n   Focus: ")
		b.WriteString(spec.Description)

		if len(spec.FocusFiles) > 0 {
			b.WriteString("\n   Prioritise details from: ")
			b.WriteString(strings.Join(spec.FocusFiles, ", "))
			b.WriteString(", but search all files")
		}
	}

	if extraPrompt != "" {
		b.WriteString("\n\nAdditional guidance:\n")
		b.WriteString(extraPrompt)
	}

	return strings.TrimSpace(b.String())
}
