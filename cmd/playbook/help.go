package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: playbook <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render playbook text files to HTML")
	fmt.Fprintln(w, "  pdf        Render playbook text files to PDF")
	fmt.Fprintln(w, "  serve      Serve a live preview with PDF export")
	fmt.Fprintln(w, "  outline    Print the page outline as JSON")
	fmt.Fprintln(w, "  rules      Print the effective configuration as YAML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'playbook help <command>' for details on a specific command.")
}

func printConvertFlags(w io.Writer) {
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  files    Playbook text files (default: server.source from config or PLAYBOOK_SOURCE)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to each source)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --title <s>           Document title")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file")
	fmt.Fprintln(w, "      --style <name>        CSS style name")
	fmt.Fprintln(w, "      --template <name>     Template set name")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

func printPageFlags(w io.Writer) {
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: playbook render [files...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render playbook text files to standalone HTML documents.")
	fmt.Fprintln(w)
	printConvertFlags(w)
}

// printPDFUsage prints usage for the pdf command.
func printPDFUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: playbook pdf [files...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render playbook text files to PDF with headless Chrome.")
	fmt.Fprintln(w)
	printConvertFlags(w)
	printPageFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: playbook serve [file] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve a live preview. Output is re-rendered when the source changes.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default: server.addr or PORT)")
	fmt.Fprintln(w, "  -s, --source <path>       Playbook text file")
	fmt.Fprintln(w, "      --assets-dir <dir>    Directory served under /assets/")
	fmt.Fprintln(w, "      --title <s>           Document title")
	fmt.Fprintln(w, "  -w, --workers <n>         PDF export workers (0 = auto)")
	fmt.Fprintln(w, "      --no-pdf              Disable /export.pdf")
	fmt.Fprintln(w, "      --log-format <s>      Log format: json, text")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	printPageFlags(w)
}

// printOutlineUsage prints usage for the outline command.
func printOutlineUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: playbook outline [file] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the page containers of a rendered playbook as JSON.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// printRulesUsage prints usage for the rules command.
func printRulesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: playbook rules [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration, including the rule tables, as YAML.")
	fmt.Fprintln(w, "The output is a valid config file to start customizing from.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "pdf":
		printPDFUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "outline":
		printOutlineUsage(env.Stdout)
	case "rules":
		printRulesUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: playbook version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: playbook help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
