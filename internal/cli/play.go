package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hexwild/manifoldcube"
	"github.com/hexwild/manifoldcube/internal/config"
	"github.com/hexwild/manifoldcube/internal/recorder"
	"github.com/hexwild/manifoldcube/internal/storage"
)

var (
	playSize     int
	playChaos    int
	playSeed     int64
	playScramble int
	playNoRecord bool
	playResume   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive play mode",
	Long: `Start an interactive TUI for playing the manifold cube.

Keyboard shortcuts:
  arrows/hjkl - Move the cursor on the current face
  tab         - Cycle to the next face
  f/space     - Flip the tile under the cursor (and its antipodal twin)
  x/X y/Y z/Z - Rotate the slice under the cursor about an axis
  c           - Toggle the chaos simulator
  1-4         - Set chaos level (calm, uneasy, stormy, feral)
  s           - Scramble the cube
  n           - New game
  q/Esc       - Quit

Every action is recorded to the database unless --no-record is given.
If a previous game was interrupted (the state file still names an
active game), --resume rebuilds its board from the event log and
continues recording into it.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVar(&playSize, "size", 3, "Cube size N (N >= 2)")
	playCmd.Flags().IntVar(&playChaos, "chaos", 2, "Chaos level (1-4)")
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "Random seed (0 = time-based)")
	playCmd.Flags().IntVar(&playScramble, "scramble", 0, "Scramble with this many moves at start")
	playCmd.Flags().BoolVar(&playNoRecord, "no-record", false, "Do not record the game")
	playCmd.Flags().BoolVar(&playResume, "resume", false, "Resume the interrupted active game")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	winStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	chaosStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Reverse(true).
			Bold(true)
)

// faceColors maps each face color to a terminal color for cell rendering.
var faceColors = map[manifoldcube.Face]lipgloss.Color{
	manifoldcube.Red:    lipgloss.Color("196"),
	manifoldcube.White:  lipgloss.Color("255"),
	manifoldcube.Blue:   lipgloss.Color("39"),
	manifoldcube.Orange: lipgloss.Color("208"),
	manifoldcube.Yellow: lipgloss.Color("226"),
	manifoldcube.Green:  lipgloss.Color("82"),
}

// Messages
type tickMsg time.Time

// Model
type playModel struct {
	game    *manifoldcube.Game
	session *recorder.Session
	logger  *GameLogger

	// Cursor
	curFace manifoldcube.Face
	curRow  int
	curCol  int

	// Last chain activity shown in the status area.
	lastChain string
	lastFlip  string

	lastTick time.Time

	width    int
	height   int
	err      error
	quitting bool
	logPath  string
}

func newPlayModel(game *manifoldcube.Game, session *recorder.Session) *playModel {
	logger := NewGameLogger()
	homeDir, _ := os.UserHomeDir()
	logDir := filepath.Join(homeDir, ".manifoldcube", "logs")
	if err := logger.Start(logDir); err != nil {
		// Log error but continue - logging is optional
		fmt.Printf("Warning: could not start logging: %v\n", err)
	}

	return &playModel{
		game:     game,
		session:  session,
		logger:   logger,
		curFace:  manifoldcube.Red,
		lastTick: time.Now(),
	}
}

func (m *playModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// cursorLocation resolves the cursor's grid cell to a physical location.
func (m *playModel) cursorLocation() (manifoldcube.Location, bool) {
	n := m.game.Cube().Size()
	id := fmt.Sprintf("M%d-%03d", int(m.curFace), m.curRow*n+m.curCol+1)
	return m.game.Cube().Resolve(id)
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.logger != nil {
			m.logger.LogKeyPress(msg.String())
		}

		n := m.game.Cube().Size()

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			if m.session != nil {
				m.session.End()
			}
			if m.logger != nil {
				m.logPath = m.logger.FilePath()
				m.logger.Close()
			}
			return m, tea.Quit

		case "up", "k":
			if m.curRow > 0 {
				m.curRow--
			}
		case "down", "j":
			if m.curRow < n-1 {
				m.curRow++
			}
		case "left", "h":
			if m.curCol > 0 {
				m.curCol--
			}
		case "right", "l":
			if m.curCol < n-1 {
				m.curCol++
			}
		case "tab":
			m.curFace++
			if !m.curFace.Valid() {
				m.curFace = manifoldcube.Red
			}

		case "f", " ":
			if loc, ok := m.cursorLocation(); ok {
				status := m.game.FlipAt(loc)
				m.lastFlip = fmt.Sprintf("flip %s: %s", m.cursorID(), status)
			}

		case "x", "X", "y", "Y", "z", "Z":
			if mv, ok := m.cursorMove(msg.String()); ok {
				if m.game.Rotate(mv) {
					if m.session != nil {
						m.session.RecordRotate(mv)
					}
					if m.logger != nil {
						m.logger.LogEvent(LogEventRotate, mv.Notation())
					}
				}
			}

		case "c":
			m.game.SetChaos(!m.game.ChaosEnabled())

		case "1", "2", "3", "4":
			level := manifoldcube.ChaosLevel(msg.String()[0] - '0')
			m.game.SetChaosLevel(level)

		case "s":
			moves := m.game.Scramble(10 * n)
			if m.session != nil {
				for _, mv := range moves {
					m.session.RecordRotate(mv)
				}
			}
			m.lastFlip = ""
			m.lastChain = ""

		case "n":
			if err := m.game.Reset(n); err != nil {
				m.err = err
			}
			m.lastFlip = ""
			m.lastChain = ""
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		now := time.Time(msg)
		dt := now.Sub(m.lastTick)
		m.lastTick = now

		events := m.game.Tick(dt)
		for _, ev := range events {
			fromID, toID := m.chainIDs(ev)
			m.lastChain = fmt.Sprintf("chain %s -> %s", fromID, toID)
			if m.logger != nil {
				m.logger.LogEvent(LogEventChain, m.lastChain)
			}
		}
		return m, m.tickCmd()
	}

	return m, nil
}

func (m *playModel) cursorID() string {
	n := m.game.Cube().Size()
	return fmt.Sprintf("M%d-%03d", int(m.curFace), m.curRow*n+m.curCol+1)
}

// cursorMove builds the slice rotation for an axis key pressed while the
// cursor identifies a physical location. The slice index comes from the
// location's coordinate along that axis.
func (m *playModel) cursorMove(key string) (manifoldcube.Move, bool) {
	loc, ok := m.cursorLocation()
	if !ok {
		return manifoldcube.Move{}, false
	}

	var axis manifoldcube.Axis
	var slice int
	switch strings.ToLower(key) {
	case "x":
		axis, slice = manifoldcube.AxisX, loc.X
	case "y":
		axis, slice = manifoldcube.AxisY, loc.Y
	case "z":
		axis, slice = manifoldcube.AxisZ, loc.Z
	default:
		return manifoldcube.Move{}, false
	}

	dir := 1
	if key == strings.ToUpper(key) {
		dir = -1
	}
	return manifoldcube.Move{Axis: axis, Slice: slice, Dir: dir}, true
}

func (m *playModel) chainIDs(ev manifoldcube.ChainEvent) (string, string) {
	cube := m.game.Cube()
	fromID, toID := "?", "?"
	if st := cube.StickerAt(ev.From); st != nil {
		fromID = st.GridID(cube.Size())
	}
	if st := cube.StickerAt(ev.To); st != nil {
		toID = st.GridID(cube.Size())
	}
	return fromID, toID
}

// renderFace renders one face's grid with the cursor highlighted.
func (m *playModel) renderFace(face manifoldcube.Face) string {
	cube := m.game.Cube()
	n := cube.Size()

	var b strings.Builder
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			id := fmt.Sprintf("M%d-%03d", int(face), row*n+col+1)
			cell := "??"
			style := lipgloss.NewStyle()
			if loc, ok := cube.Resolve(id); ok {
				if st := cube.StickerAt(loc); st != nil {
					cell = st.Current.String() + " "
					style = style.Foreground(faceColors[st.Current])
				}
			}
			if face == m.curFace && row == m.curRow && col == m.curCol {
				style = cursorStyle.Foreground(style.GetForeground())
			}
			b.WriteString(style.Render(cell))
		}
		if row < n-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderNet renders the cube as an unfolded net: +Y on top, the -X +Z +X -Z
// band in the middle, -Y at the bottom.
func (m *playModel) renderNet() string {
	top := m.renderFace(manifoldcube.White)
	band := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderFace(manifoldcube.Orange), "  ",
		m.renderFace(manifoldcube.Blue), "  ",
		m.renderFace(manifoldcube.Red), "  ",
		m.renderFace(manifoldcube.Green),
	)
	bottom := m.renderFace(manifoldcube.Yellow)

	n := m.game.Cube().Size()
	indent := strings.Repeat(" ", 2*n+2)
	pad := func(s string) string {
		lines := strings.Split(s, "\n")
		for i := range lines {
			lines[i] = indent + lines[i]
		}
		return strings.Join(lines, "\n")
	}

	return pad(top) + "\n\n" + band + "\n\n" + pad(bottom)
}

func (m *playModel) View() string {
	if m.quitting {
		msg := "Goodbye!\n"
		if m.logPath != "" {
			msg += fmt.Sprintf("Log saved to: %s\n", m.logPath)
		}
		return msg
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Manifold Cube"))
	b.WriteString("\n\n")

	b.WriteString(m.renderNet())
	b.WriteString("\n\n")

	// Cursor and twin
	cube := m.game.Cube()
	cursorLine := fmt.Sprintf("Cursor: %s (face %s)", m.cursorID(), m.curFace)
	if loc, ok := m.cursorLocation(); ok {
		if st := cube.StickerAt(loc); st != nil {
			cursorLine += fmt.Sprintf("  twin: %s", st.AntipodalID(cube.Size()))
		}
	}
	b.WriteString(statusStyle.Render(cursorLine))
	b.WriteString("\n")

	// Chaos status
	chaos := "off"
	if m.game.ChaosEnabled() {
		chaos = m.game.ChaosLevel().String()
		if chain := m.game.Chain(); chain != nil && !chain.Idle() {
			chaos += " (chain active)"
		}
	}
	b.WriteString(chaosStyle.Render(fmt.Sprintf("Chaos: %s", chaos)))
	b.WriteString("\n")

	if m.lastFlip != "" {
		b.WriteString(statusStyle.Render(m.lastFlip))
		b.WriteString("\n")
	}
	if m.lastChain != "" {
		b.WriteString(statusStyle.Render(m.lastChain))
		b.WriteString("\n")
	}

	// Win state
	win := m.game.Win()
	var wins []string
	if win.Classic {
		wins = append(wins, "CLASSIC")
	}
	if win.Sudokube {
		wins = append(wins, "SUDOKUBE")
	}
	if win.Ultimate {
		wins = append(wins, "ULTIMATE")
	}
	if len(wins) > 0 {
		b.WriteString(winStyle.Render(fmt.Sprintf("WIN: %s", strings.Join(wins, " + "))))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Keys: arrows=move tab=face f=flip x/y/z=rotate c=chaos 1-4=level s=scramble n=new q=quit"))
	b.WriteString("\n")

	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Environment supplies defaults; explicit flags win.
	if !cmd.Flags().Changed("size") {
		playSize = cfg.Size
	}
	if !cmd.Flags().Changed("chaos") {
		playChaos = cfg.ChaosLevel
	}
	if !cmd.Flags().Changed("seed") {
		playSeed = cfg.Seed
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}

	if playResume {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stateFile, err := recorder.NewDefaultStateFile()
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		game, session, err := resumeSession(db, stateFile,
			manifoldcube.WithRefractoryWindow(cfg.RefractoryWindow))
		if err != nil {
			return err
		}
		fmt.Printf("Resuming game %s\n", session.GameID())
		return runTUI(game, session)
	}

	opts := []manifoldcube.Option{
		manifoldcube.WithSize(playSize),
		manifoldcube.WithChaosLevel(manifoldcube.ChaosLevel(playChaos)),
		manifoldcube.WithRefractoryWindow(cfg.RefractoryWindow),
	}
	if playSeed != 0 {
		opts = append(opts, manifoldcube.WithSeed(playSeed))
	}

	game, err := manifoldcube.NewGame(opts...)
	if err != nil {
		return err
	}

	var scrambleMoves []manifoldcube.Move
	if playScramble > 0 {
		scrambleMoves = game.Scramble(playScramble)
	}

	var session *recorder.Session
	if !playNoRecord {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stateFile, err := recorder.NewDefaultStateFile()
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		if stateFile.HasActiveGame() {
			return fmt.Errorf("active game in progress: %s\nUse 'manifold play --resume' to continue it or 'manifold games end' to finish it first", stateFile.ActiveGameID())
		}

		session = recorder.NewSession(db, stateFile)
		scramble := manifoldcube.FormatMoves(scrambleMoves)
		if _, err := session.Start(playSize, game.Seed(), playChaos, scramble, "", version); err != nil {
			return err
		}
		session.Attach(game)
	}

	return runTUI(game, session)
}

// resumeSession picks up the interrupted game named in the state file:
// it resumes its recording session and rebuilds the board the player
// last saw by re-driving the game's scramble and event log.
func resumeSession(db *storage.DB, stateFile *recorder.StateFile, opts ...manifoldcube.Option) (*manifoldcube.Game, *recorder.Session, error) {
	if !stateFile.HasActiveGame() {
		return nil, nil, fmt.Errorf("no active game to resume")
	}
	gameID := stateFile.ActiveGameID()

	row, err := storage.NewGameRepository(db).Get(gameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}
	if row == nil {
		return nil, nil, fmt.Errorf("active game not found: %s", gameID)
	}

	session := recorder.NewSession(db, stateFile)
	if err := session.Resume(gameID); err != nil {
		return nil, nil, err
	}

	gameOpts := append([]manifoldcube.Option{
		manifoldcube.WithSize(row.Size),
		manifoldcube.WithChaosLevel(manifoldcube.ChaosLevel(row.ChaosLevel)),
		manifoldcube.WithSeed(row.Seed),
	}, opts...)
	game, err := manifoldcube.NewGame(gameOpts...)
	if err != nil {
		return nil, nil, err
	}

	if _, err := replayInto(game.Cube(), db, row, nil); err != nil {
		return nil, nil, err
	}

	session.Attach(game)
	return game, session, nil
}

func runTUI(game *manifoldcube.Game, session *recorder.Session) error {
	model := newPlayModel(game, session)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if session != nil && verbose {
		fmt.Printf("Game recorded: %s\n", session.GameID())
	}

	return nil
}
