// Package output provides styled terminal output for the devgenesis CLI.
//
// # Usage
//
// Create a Printer for a writer (usually cmd.OutOrStdout()):
//
//	p := output.New(os.Stdout, verbose)
//	p.Success("Project created")
//	p.Info("Next steps:")
//	p.Step("cd my-app")
//	p.Error("Something went wrong")
//
// Generation events map onto the same styles through Printer.Event.
//
// # Styling
//
// The package uses lipgloss for styling and hides it from callers:
//
//   - Success: ✅ green bold
//   - Error: ❌ red bold
//   - Warning: ⚠️ yellow
//   - Info: ℹ️ cyan
//   - Step: indented gray
//   - Verbose: 🔍 gray (when enabled)
package output
