// Package playbook converts structured plain-text playbooks into paginated
// HTML and PDF.
//
// # Quick Start
//
// Parse and render with the built-in rules:
//
//	doc, err := playbook.ParseFile("playbook.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pages := playbook.Render(doc)
//
// Render returns the page containers only: a cover page, a contents page
// and one page per section. Use a Converter for a standalone HTML document
// with styles, or a PDF:
//
//	conv, err := playbook.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, playbook.Input{Text: text})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("playbook.pdf", result.PDF, 0644)
//
// # Source Format
//
// A source file holds cover page lines, a "TABLE OF CONTENTS" line with its
// entries, then numbered sections. A section starts with "N. TITLE" on a
// line followed by a line of "=" characters; subsections start with
// "N.M Title". Content lines use bullets, numbered items, ALL-CAPS labels,
// block keywords (KEY POINTS, EMAIL TEMPLATE:, HOOK POINT:, EXAMPLE:,
// IMPORTANT:) and [IMAGE: path] or [FULLPAGE_IMAGE: path] directives.
//
// # Pipeline
//
//  1. Parse: a single forward pass splits cover, contents and sections, and
//     segments each block of lines into typed items. Text is escaped here,
//     once.
//  2. Normalize: excluded sections are dropped and the rest renumbered 1..N.
//  3. Render: the table of contents is rebuilt from the normalized sections
//     with page numbers (cover 1, contents 2, sections from 3), and each
//     section becomes one page container.
//  4. PDF: the document is printed by headless Chrome (go-rod).
//
// Parsing never fails. Unrecognized constructs degrade to paragraphs.
//
// # Configuration
//
// Rule tables drive the domain-specific parts: excluded section titles,
// icon symbols, bolded product names, image placement and cover anchors.
//
//	conv, err := playbook.NewConverter(
//	    playbook.WithRules(rules),
//	    playbook.WithAssetPath("/path/to/custom/assets"),
//	    playbook.WithTimeout(2 * time.Minute),
//	)
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to manage multiple browser instances:
//
//	pool := playbook.NewConverterPool(playbook.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
package playbook
