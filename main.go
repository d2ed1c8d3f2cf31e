package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"github.com/drujensen/toolpanel/internal/domain/entities"
	"github.com/drujensen/toolpanel/internal/domain/errors"
	"github.com/drujensen/toolpanel/internal/domain/events"
	"github.com/drujensen/toolpanel/internal/domain/services"
	"github.com/drujensen/toolpanel/internal/impl/config"
	"github.com/drujensen/toolpanel/internal/impl/prompt"
	"github.com/drujensen/toolpanel/internal/impl/registry"
	"github.com/drujensen/toolpanel/internal/panel"
	"github.com/drujensen/toolpanel/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

var (
	version = "unknown" // This should be set during build with -ldflags="-X main.version=1.0.0"
)

func main() {
	// Check version flag first
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Println(version)
		os.Exit(0)
	}

	os.Exit(run())
}

// run wires the panel for the requested mode and returns the exit code.
func run() int {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: toolpanel [list | exec <tool>] [flags]\n")
		flag.PrintDefaults()
	}

	apiURL := flag.String("api-url", "", "Tool registry base URL (overrides TOOLPANEL_API_URL)")
	timeout := flag.Duration("timeout", 0, "Request timeout, e.g. 10s (overrides TOOLPANEL_TIMEOUT)")
	params := flag.String("params", "", "JSON parameters for exec; skips the interactive form")
	accessible := flag.Bool("accessible", false, "Use accessible prompts for exec")
	save := flag.Bool("save", false, "Write --api-url and --timeout to the global config file")

	// Default mode is the TUI
	modeStr := "tui"
	toolName := ""

	// The mode word (and exec's tool name) is dropped so flag.Parse sees only flags
	if len(os.Args) > 1 && os.Args[1] == "list" {
		modeStr = "list"
		os.Args = slices.Delete(os.Args, 0, 1)
	} else if len(os.Args) > 1 && os.Args[1] == "exec" {
		if len(os.Args) < 3 || strings.HasPrefix(os.Args[2], "-") {
			fmt.Fprintf(os.Stderr, "exec requires a tool name\n")
			flag.Usage()
			return 1
		}
		modeStr = "exec"
		toolName = os.Args[2]
		os.Args = slices.Delete(os.Args, 0, 2)
	}

	flag.Parse()

	cfg, err := config.InitConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *apiURL != "" {
		cfg.APIURL = strings.TrimRight(*apiURL, "/")
	}
	if *timeout < 0 {
		fmt.Fprintf(os.Stderr, "Invalid timeout: %s\n", *timeout)
		return 1
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}

	logger, err := cfg.NewLogger(modeStr == "tui")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if *save {
		if err := saveSettings(*apiURL, *timeout, logger); err != nil {
			logger.Error("Failed to save settings", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Failed to save settings: %v\n", err)
			return 1
		}
		fmt.Printf("Saved settings to %s\n", config.GlobalConfigPath())
	}

	unsubscribe := subscribeAudit(logger.Named("audit"))
	defer unsubscribe()

	client := registry.NewClient(cfg.APIURL, logger,
		registry.WithToken(cfg.APIToken),
		registry.WithTimeout(cfg.Timeout),
		registry.WithUserAgent("toolpanel/"+version),
	)
	toolService := services.NewToolService(client, logger)

	switch modeStr {
	case "list":
		listTools(toolService)
		return 0
	case "exec":
		var prompter panel.Prompter = prompt.NewFormPrompter(*accessible)
		if *params != "" {
			prompter = prompt.StaticPrompter{Text: *params}
		}
		return execTool(toolService, toolName, prompter)
	default:
		p := tea.NewProgram(tui.NewTUI(toolService), tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI exited with error", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
}

func loadTools(ctx context.Context, toolService services.ToolService) *panel.ToolList {
	toolList := panel.NewToolList()
	toolList.BeginLoad()
	toolList.Resolve(toolService.ListTools(ctx), time.Now())
	return toolList
}

func listTools(toolService services.ToolService) {
	toolList := loadTools(context.Background(), toolService)
	if toolList.Empty() {
		fmt.Println("No tools available")
		fmt.Println("Tools will appear here when they are configured in your backend.")
		return
	}

	for _, tool := range toolList.Tools() {
		item := entities.ToolItem{Tool: tool}
		fmt.Printf("%s\n    %s\n", item.Title(), item.Description())
	}
}

// execTool runs one execution from the command line and returns the exit code.
func execTool(toolService services.ToolService, name string, prompter panel.Prompter) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tool := loadTools(ctx, toolService).Find(name)
	if tool == nil {
		fmt.Fprintf(os.Stderr, "Tool %q not found\n", name)
		return 1
	}

	outcome, err := panel.NewExecutions().Execute(ctx, tool, prompter, toolService.ExecuteTool)
	if err != nil {
		var formatErr *errors.ParameterFormatError
		if stderrors.As(err, &formatErr) {
			fmt.Fprintln(os.Stderr, panel.ParameterNotice(err).String())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	if outcome == nil {
		fmt.Println("Cancelled")
		return 0
	}

	fmt.Println(outcome.Notice().String())
	fmt.Fprintf(os.Stderr, "\n%s finished in %s\n", tool.Name, outcome.Duration.Round(time.Millisecond))
	if outcome.Err != nil {
		return 1
	}
	return 0
}

// saveSettings merges the command line overrides into the global config file,
// keeping any token already stored there.
func saveSettings(apiURL string, timeout time.Duration, logger *zap.Logger) error {
	global, err := config.LoadGlobalConfig(logger)
	if err != nil {
		return err
	}
	if apiURL != "" {
		global.APIURL = strings.TrimRight(apiURL, "/")
	}
	if timeout > 0 {
		global.Timeout = timeout.String()
	}
	return config.SaveGlobalConfig(global, logger)
}

// subscribeAudit records every registry round trip in the log.
func subscribeAudit(logger *zap.Logger) func() {
	unsubscribers := []func(){
		events.SubscribeToToolsListed(func(data events.ToolsListedEventData) {
			logger.Info("Tools listed", zap.Int("count", data.Count), zap.Error(data.Err))
		}),
		events.SubscribeToToolExecuted(func(data events.ToolExecutedEventData) {
			logger.Info("Tool executed",
				zap.String("tool", data.ToolName),
				zap.Duration("duration", data.Duration),
				zap.Error(data.Err))
		}),
		events.SubscribeToToolConfigured(func(data events.ToolConfiguredEventData) {
			logger.Info("Tool configured", zap.String("tool", data.ToolName), zap.Error(data.Err))
		}),
	}

	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}
