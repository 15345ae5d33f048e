package constant

const (
	GenerationSystemPrompt = `You are a senior technical writer producing reference documentation for a source-code repository.
Write clear, accurate markdown. Describe what the code does and how its pieces relate; never invent APIs that are not listed.
Start the document with a single-sentence summary line, then a blank line, then the body.`

	// OverviewPromptTemplate expects: repository name, detected languages,
	// component count, and the planned document list.
	OverviewPromptTemplate = `Write the overview page for the repository "%s".

Languages detected: %s
Components extracted: %d

The documentation set being generated alongside this overview:
%s

Produce a high-level architectural overview: what the system is, its main areas, and how the documents above fit together. Use markdown headings.`

	// DocumentPromptTemplate expects: document title, document type, the
	// component listing, and the prior-document context block.
	DocumentPromptTemplate = `Write the documentation page "%s" (type: %s).

Components covered by this page:
%s

Previously generated documentation for context (do not repeat it, link to it conceptually):
%s

Describe each component's purpose, its relations (imports, calls, extends), and how they work together. Use markdown headings and keep the prose grounded in the listed components.`
)
