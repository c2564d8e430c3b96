// Package console provides the interactive text front end: the command
// registry and parser, and a session loop over an input and output stream.
package console

// Categories for organizing commands.
const (
	CategoryRooms     = "rooms"
	CategoryReports   = "reports"
	CategoryResources = "resources"
	CategorySystem    = "system"
)

// Handler identifiers mapping commands to session handlers.
const (
	HandlerModules    = "modules"
	HandlerUse        = "use"
	HandlerShow       = "show"
	HandlerTotals     = "totals"
	HandlerAdd        = "add"
	HandlerRemove     = "remove"
	HandlerSet        = "set"
	HandlerExport     = "export"
	HandlerSummary    = "summary"
	HandlerSearch     = "search"
	HandlerCategories = "categories"
	HandlerHelp       = "help"
	HandlerQuit       = "quit"
)

// Command defines a user-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument syntax, e.g. "set <room> <item> <usable|broken> <n>".
	Usage string
	// Help is the short help text.
	Help string
	// Category groups the command for help output.
	Category string
	// Handler names the session handler that runs the command.
	Handler string
}

// BuiltinCommands returns all built-in commands.
func BuiltinCommands() []Command {
	return []Command{
		// Room commands
		{Name: "modules", Aliases: []string{"ls"}, Usage: "modules", Help: "List inventory modules", Category: CategoryRooms, Handler: HandlerModules},
		{Name: "use", Aliases: []string{"open"}, Usage: "use <module>", Help: "Switch to a module", Category: CategoryRooms, Handler: HandlerUse},
		{Name: "show", Aliases: []string{"rooms"}, Usage: "show [room]", Help: "List rooms, or show one room's items", Category: CategoryRooms, Handler: HandlerShow},
		{Name: "totals", Aliases: []string{"t"}, Usage: "totals", Help: "Show totals across all rooms", Category: CategoryRooms, Handler: HandlerTotals},
		{Name: "add", Aliases: nil, Usage: "add <name>", Help: "Add a room with all counts at zero", Category: CategoryRooms, Handler: HandlerAdd},
		{Name: "remove", Aliases: []string{"rm"}, Usage: "remove <room>", Help: "Remove a room", Category: CategoryRooms, Handler: HandlerRemove},
		{Name: "set", Aliases: nil, Usage: "set <room> <item> <usable|broken> <n>", Help: "Set one count of a room", Category: CategoryRooms, Handler: HandlerSet},

		// Report commands
		{Name: "export", Aliases: []string{"x"}, Usage: "export [pdf|xlsx|text] [path]", Help: "Export the current module", Category: CategoryReports, Handler: HandlerExport},
		{Name: "summary", Aliases: nil, Usage: "summary [<classes> ; <item>=<qty>, ...]", Help: "Build a quick per-class summary", Category: CategoryReports, Handler: HandlerSummary},

		// Resource commands
		{Name: "search", Aliases: []string{"find"}, Usage: "search <query>", Help: "Ask the model about school resources", Category: CategoryResources, Handler: HandlerSearch},
		{Name: "categories", Aliases: []string{"cat"}, Usage: "categories [n|name]", Help: "List quick-search categories, or search one", Category: CategoryResources, Handler: HandlerCategories},

		// System commands
		{Name: "help", Aliases: []string{"?"}, Usage: "help", Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit", "q"}, Usage: "quit", Help: "Leave the console", Category: CategorySystem, Handler: HandlerQuit},
	}
}
