// termsuji-chess is a terminal client for a remote chess server with an
// optional fog of war view.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"

	"termsuji-chess/config"
	"termsuji-chess/engine/httpapi"
	"termsuji-chess/logging"
	"termsuji-chess/session"
	"termsuji-chess/types"
	"termsuji-chess/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagServer     = flag.String("server", "", "Chess server URL (overrides the config file)")
	flagFog        = flag.Bool("fog", false, "Start with fog of war enabled")
	flagQuickStart = flag.Bool("play", false, "Connect immediately, skipping the connect screen")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (board only)")
	flagLogLevel   = flag.String("loglevel", "", "Log level (error, warn, info, debug, trace)")
	flagSave       = flag.Bool("save", false, "Save the server chosen on the connect screen to the config file")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.ChessBoardUI
var gameFrame *tview.Flex
var statusPanel *ui.StatusPanel
var overlay *ui.OverlayUI
var sess *session.Session
var cfg *config.Config
var focusMode bool

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termsuji-chess %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logFile, err := logging.OpenFile(level)
	if err != nil {
		fmt.Printf("Warning: logging disabled: %s\n", err)
	} else {
		defer logFile.Close()
	}
	logging.Info("termsuji-chess %s starting, server=%s fog=%v", Version, cfg.Server.URL, cfg.Server.Fog)

	quickStart := *flagQuickStart || *flagServer != "" || *flagFocus

	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ♞ termsuji-chess ")

	// Game view setup
	gameBoard = ui.NewChessBoard(cfg)
	gameBoard.SetClickHandler(func(c types.Coordinate) {
		if sess != nil {
			sess.SquareClicked(c)
		}
	})
	statusPanel = ui.NewStatusPanel(cfg.Server.URL)
	gameFrame = tview.NewFlex()
	ui.BuildNormalLayout(gameFrame, gameBoard, statusPanel)

	overlay = ui.NewOverlay(func() {
		if sess != nil {
			sess.ResetGame()
		}
	})
	overlay.SetVisibilityFunc(func(visible bool) {
		if visible {
			rootPage.ShowPage("overlay")
		} else {
			rootPage.HidePage("overlay")
		}
	})

	gameBoard.Box.SetInputCapture(handleBoardKey)

	// Connect screen
	connectUI := ui.NewConnectForm(
		ui.ConnectOptions{ServerURL: cfg.Server.URL, Fog: cfg.Server.Fog},
		connect,
		func() {
			app.Stop()
		},
	)

	rootPage.AddPage("connect", ui.CreateCenteredForm(connectUI.Flex(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("overlay", overlay.Centered(), true, false)

	if quickStart {
		if err := connect(ui.ConnectOptions{ServerURL: cfg.Server.URL, Fog: cfg.Server.Fog}); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if *flagFocus {
			focusMode = true
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}
	if sess != nil {
		sess.Close()
	}
}

// applyFlags overrides config values with flags given on the command line.
func applyFlags(c *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "server":
			c.Server.URL = *flagServer
		case "fog":
			c.Server.Fog = *flagFog
		case "loglevel":
			c.LogLevel = *flagLogLevel
		}
	})
}

// connect starts a new session against the chosen server and shows the board.
func connect(opts ui.ConnectOptions) error {
	if err := config.ValidateServerURL(opts.ServerURL); err != nil {
		return err
	}
	if sess != nil {
		sess.Close()
	}

	changed := opts.ServerURL != cfg.Server.URL || opts.Fog != cfg.Server.Fog
	cfg.Server.URL = opts.ServerURL
	cfg.Server.Fog = opts.Fog
	if *flagSave && changed {
		if err := cfg.Save(); err != nil {
			logging.Warn("connect: saving config failed: %v", err)
		}
	}

	id := uuid.NewString()
	server := httpapi.NewClient(opts.ServerURL, id, cfg.Server.Timeout())
	statusPanel.SetServer(server.BaseURL())
	overlay.Hide()

	views := session.Views{Board: gameBoard, Overlay: overlay, Status: statusPanel}
	sess = session.New(id, server, views, ui.AppDispatcher{App: app}, opts.Fog)
	rootPage.SwitchToPage("gameview")
	sess.RefreshBoard()
	return nil
}

// handleBoardKey maps keys on the game board to board and session actions.
func handleBoardKey(event *tcell.EventKey) *tcell.EventKey {
	if sess == nil {
		return event
	}
	switch event.Key() {
	case tcell.KeyEsc:
		back()
		return nil
	case tcell.KeyUp:
		gameBoard.MoveCursor(-1, 0)
	case tcell.KeyDown:
		gameBoard.MoveCursor(1, 0)
	case tcell.KeyLeft:
		gameBoard.MoveCursor(0, -1)
	case tcell.KeyRight:
		gameBoard.MoveCursor(0, 1)
	case tcell.KeyEnter:
		gameBoard.ActivateCursor()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			back()
			return nil
		case 'h':
			gameBoard.MoveCursor(0, -1)
		case 'j':
			gameBoard.MoveCursor(1, 0)
		case 'k':
			gameBoard.MoveCursor(-1, 0)
		case 'l':
			gameBoard.MoveCursor(0, 1)
		case ' ':
			gameBoard.ActivateCursor()
		case 'v':
			sess.ToggleFog()
		case 'r':
			sess.RefreshBoard()
		case 'n':
			sess.ResetGame()
		case 'f':
			focusMode = !focusMode
			if focusMode {
				ui.BuildFocusLayout(gameFrame, gameBoard)
			} else {
				ui.BuildNormalLayout(gameFrame, gameBoard, statusPanel)
			}
		}
	}
	return event
}

// back cancels a pending selection first, then hides the cursor, and
// finally leaves the game for the connect screen.
func back() {
	if _, ok := sess.Selected(); ok {
		sess.CancelSelection()
		return
	}
	if gameBoard.CursorSquare() != nil {
		gameBoard.HideCursor()
		return
	}
	sess.Close()
	sess = nil
	rootPage.SwitchToPage("connect")
}
