package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"ridethebus-server/pkg/deck"
	"ridethebus-server/pkg/playable"
)

// Presenter renders a game to a terminal
type Presenter struct {
	w      io.Writer
	styles *Styles

	lock     sync.Mutex
	cards    []*deck.Card
	controls map[playable.ControlID]bool
	min, max int
}

// NewPresenter returns a presenter writing to w
func NewPresenter(w io.Writer, styles *Styles) *Presenter {
	return &Presenter{
		w:        w,
		styles:   styles,
		controls: make(map[playable.ControlID]bool),
	}
}

// RenderCard prints the card next to the cards already drawn this round
func (p *Presenter) RenderCard(card *deck.Card) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.cards = append(p.cards, card)

	faces := make([]string, 0, len(p.cards))
	for _, c := range p.cards {
		faces = append(faces, p.renderCard(c))
	}

	p.println(strings.Join(faces, " "))
}

func (p *Presenter) renderCard(card *deck.Card) string {
	face := fmt.Sprintf("[%s]", card.String())
	if card.Color() == deck.Red {
		return p.styles.CardRed.Render(face)
	}

	return p.styles.CardBlack.Render(face)
}

// Notify prints the message, the duration is ignored
func (p *Presenter) Notify(message, color string, _ time.Duration) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.println(p.styles.notify(color).Render(message))
}

// Celebrate prints a row of stars, longer for bigger celebrations
func (p *Presenter) Celebrate(intensity int) {
	p.lock.Lock()
	defer p.lock.Unlock()

	n := intensity / 100
	if n < 1 {
		n = 1
	}

	if n > 40 {
		n = 40
	}

	p.println(p.styles.notify("gold").Render(strings.Repeat("*", n)))
}

// SetControlsEnabled tracks which commands are available
func (p *Presenter) SetControlsEnabled(ids []playable.ControlID, enabled bool) {
	p.lock.Lock()
	defer p.lock.Unlock()

	for _, id := range ids {
		p.controls[id] = enabled
	}
}

// SetWagerBounds tracks the bet range shown in the prompt
func (p *Presenter) SetWagerBounds(min, max int) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.min = min
	p.max = max
}

// ShowHint prints the rules for the current stage
func (p *Presenter) ShowHint(text string) {
	if text == "" {
		return
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	p.println(p.styles.Hint.Render(text))
}

// ClearCards forgets the drawn cards and prints a separator
func (p *Presenter) ClearCards() {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.cards = nil
	p.println(p.styles.Separator.Render(strings.Repeat("-", 32)))
}

// Error prints an error
func (p *Presenter) Error(err error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.println(p.styles.Error.Render(err.Error()))
}

// Header prints a title banner
func (p *Presenter) Header(title string) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.println(p.styles.Header.Render(title))
}

// Println prints a plain line
func (p *Presenter) Println(line string) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.println(line)
}

// Prompt prints the available commands
func (p *Presenter) Prompt(bet, bankroll int) {
	p.lock.Lock()
	defer p.lock.Unlock()

	commands := make([]string, 0)
	for _, id := range p.enabledControls() {
		if id != playable.ControlSuits {
			commands = append(commands, string(id))
		}
	}

	commands = append(commands, "cash", "reset", "state", "quit")

	line := fmt.Sprintf("bankroll $%d, bet $%d (bet %d-%d) > %s", bankroll, bet, p.min, p.max, strings.Join(commands, " | "))
	p.println(p.styles.Prompt.Render(line))
}

// enabledControls returns the enabled controls in sorted order
// NOTE: must be called with the lock held
func (p *Presenter) enabledControls() []playable.ControlID {
	ids := make([]playable.ControlID, 0)
	for id, enabled := range p.controls {
		if enabled {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	return ids
}

func (p *Presenter) println(line string) {
	_, _ = fmt.Fprintln(p.w, line)
}
