// Package setup is the profile setup screen: name, age and the four option
// categories, kept in sync with the backend while the user edits.
package setup

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/abhisek/fitplan/internal/api"
	"github.com/abhisek/fitplan/internal/catalog"
	"github.com/abhisek/fitplan/internal/fitness"
	"github.com/abhisek/fitplan/internal/refresh"
	"github.com/abhisek/fitplan/internal/router"
	"github.com/abhisek/fitplan/internal/screen"
	"github.com/abhisek/fitplan/internal/selection"
	"github.com/abhisek/fitplan/internal/submission"
	"github.com/abhisek/fitplan/internal/ui/components"
	"github.com/abhisek/fitplan/internal/ui/layout"
)

const (
	msgOptionsFailed = "Error fetching fitness options."
	msgSubmitFailed  = "An unexpected error occurred. Please try again."
)

// CatalogSource supplies option catalogs.
type CatalogSource interface {
	Load(ctx context.Context, age int) catalog.Result
	Refresh(ctx context.Context, age int, sel fitness.SelectionSet) catalog.Result
	Cached(ctx context.Context) *fitness.Catalog
}

// Submitter submits a completed profile.
type Submitter interface {
	Submit(ctx context.Context, req submission.Request) (*fitness.Session, error)
}

// Deps wires the screen to its collaborators.
type Deps struct {
	Catalog   CatalogSource
	Submitter Submitter
	// Dashboard builds the screen shown after a successful submission.
	Dashboard func() screen.Screen

	Refresh        refresh.Config
	RefreshEnabled bool

	// Shuffle randomises chip order with Seed.
	Shuffle bool
	Seed    uint64

	// Name and Age prefill the inputs, e.g. when editing a profile.
	Name string
	Age  int
}

type field int

const (
	fieldName field = iota
	fieldAge
	fieldGoals
	fieldEquipment
	fieldCustom
	fieldWorkout
	fieldLevel
	fieldCount
)

func (f field) category() (fitness.Category, bool) {
	switch f {
	case fieldGoals:
		return fitness.CategoryGoal, true
	case fieldEquipment:
		return fitness.CategoryEquipment, true
	case fieldWorkout:
		return fitness.CategoryWorkout, true
	case fieldLevel:
		return fitness.CategoryLevel, true
	}
	return "", false
}

// SetupScreen implements screen.Screen for profile setup.
type SetupScreen struct {
	deps Deps

	name   components.TextInput
	age    components.TextInput
	custom components.TextInput
	groups map[fitness.Category]*components.ChipGroup
	focus  field

	selections *selection.Manager
	unsub      func()
	refresher  *refresh.Controller

	catalog    *fitness.Catalog
	currentAge int
	loading    bool
	stale      bool
	showDetail bool
	submitting bool
	done       bool

	warning string
	errMsg  string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.Disposable = (*SetupScreen)(nil)
var _ screen.InputCapturer = (*SetupScreen)(nil)

// New creates a SetupScreen.
func New(deps Deps) *SetupScreen {
	s := &SetupScreen{
		deps:       deps,
		name:       components.NewTextInput("Name", "Your name", false, 60),
		age:        components.NewTextInput("Age", "e.g. 30", true, 3),
		custom:     components.NewTextInput("Add equipment", "Type and press Enter", false, 40),
		groups:     make(map[fitness.Category]*components.ChipGroup),
		selections: selection.NewManager(fitness.SelectionSet{}),
		catalog:    &fitness.Catalog{},
	}
	for _, cat := range fitness.Categories {
		g := components.NewChipGroup(cat, nil)
		s.groups[cat] = &g
	}
	s.name.SetValue(deps.Name)
	if deps.Age > 0 {
		s.age.SetValue(strconv.Itoa(deps.Age))
		s.currentAge = deps.Age
	}

	if deps.RefreshEnabled {
		s.refresher = refresh.New(deps.Refresh, s.fetch)
		s.unsub = s.selections.Subscribe(func(sel fitness.SelectionSet) {
			if s.currentAge > 0 {
				s.refresher.Notify(refresh.Request{Age: s.currentAge, Selection: sel})
			}
		})
	}
	return s
}

func (s *SetupScreen) Title() string {
	return "Profile Setup"
}

func (s *SetupScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.name.Focus()}
	if s.refresher != nil {
		cmds = append(cmds, waitForRefresh(s.refresher.Results()))
	}
	switch {
	case s.currentAge > 0:
		s.loading = true
		cmds = append(cmds, s.loadCmd(s.currentAge))
	default:
		if c := s.deps.Catalog.Cached(context.Background()); c != nil {
			s.applyCatalog(c)
		}
	}
	return tea.Batch(cmds...)
}

// Dispose stops background refreshes.
func (s *SetupScreen) Dispose() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	if s.refresher != nil {
		s.refresher.Close()
	}
}

// CapturingInput reports whether a text field has focus.
func (s *SetupScreen) CapturingInput() bool {
	return s.focus == fieldName || s.focus == fieldAge || s.focus == fieldCustom
}

// Selection returns a copy of the current selection.
func (s *SetupScreen) Selection() fitness.SelectionSet {
	return s.selections.Current()
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
	}
	if _, ok := s.focus.category(); ok {
		hints = append(hints,
			layout.KeyHint{Key: "←→", Description: "Move"},
			layout.KeyHint{Key: "Space", Description: "Toggle"},
			layout.KeyHint{Key: "i", Description: "Details"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "Create plan"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.Age != s.currentAge {
			return s, nil
		}
		s.loading = false
		s.applyResult(msg.Result)
		return s, nil

	case refreshResultMsg:
		if msg.Request.Age == s.currentAge {
			s.applyResult(msg.Result)
		}
		if s.refresher == nil {
			return s, nil
		}
		return s, waitForRefresh(s.refresher.Results())

	case components.ChipToggledMsg:
		if err := s.selections.Toggle(msg.Category, msg.OptionID); err != nil {
			log.WithError(err).Warn("toggle rejected")
		}
		s.errMsg = ""
		return s, nil

	case submitResultMsg:
		return s.handleSubmitResult(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

func (s *SetupScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "ctrl+s":
		return s, s.submit()
	case "enter":
		if s.focus == fieldCustom {
			s.addCustomEquipment()
			return s, nil
		}
		if !s.CapturingInput() {
			break
		}
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "i", "?":
		if !s.CapturingInput() {
			s.showDetail = !s.showDetail
			return s, nil
		}
	}
	return s.forward(msg)
}

// forward hands msg to the focused widget.
func (s *SetupScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case fieldName:
		s.name, cmd = s.name.Update(msg)
	case fieldAge:
		s.age, cmd = s.age.Update(msg)
		cmd = tea.Batch(cmd, s.ageChanged())
	case fieldCustom:
		s.custom, cmd = s.custom.Update(msg)
	default:
		cat, _ := s.focus.category()
		g := s.groups[cat]
		*g, cmd = g.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) setFocus(f field) tea.Cmd {
	s.name.Blur()
	s.age.Blur()
	s.custom.Blur()
	for _, g := range s.groups {
		g.Focused = false
	}
	s.focus = f

	switch f {
	case fieldName:
		return s.name.Focus()
	case fieldAge:
		return s.age.Focus()
	case fieldCustom:
		return s.custom.Focus()
	}
	cat, _ := f.category()
	s.groups[cat].Focused = true
	return nil
}

// ageChanged schedules a refetch when the age field holds a new valid age.
// Without a refresh controller the catalog is loaded immediately.
func (s *SetupScreen) ageChanged() tea.Cmd {
	age, err := s.age.NumericValue()
	if err != nil || age <= 0 || age == s.currentAge {
		return nil
	}
	s.currentAge = age
	if s.refresher != nil {
		s.refresher.Notify(refresh.Request{Age: age, Selection: s.selections.Current()})
		return nil
	}
	s.loading = true
	return s.loadCmd(age)
}

func (s *SetupScreen) addCustomEquipment() {
	name := strings.TrimSpace(s.custom.Value())
	if name == "" {
		return
	}
	for _, o := range s.catalog.Equipment {
		if strings.EqualFold(o.Name, name) {
			if !s.selections.Current().Has(fitness.CategoryEquipment, o.ID) {
				if err := s.selections.Toggle(fitness.CategoryEquipment, o.ID); err != nil {
					log.WithError(err).Warn("select existing equipment")
				}
			}
			s.custom.SetValue("")
			return
		}
	}
	opt := fitness.Option{
		ID:       "custom-" + uuid.NewString(),
		Name:     name,
		Category: fitness.CategoryEquipment,
		Custom:   true,
	}
	s.catalog.Add(opt)
	s.syncGroups()
	if err := s.selections.Toggle(fitness.CategoryEquipment, opt.ID); err != nil {
		log.WithError(err).Warn("select custom equipment")
	}
	s.custom.SetValue("")
}

func (s *SetupScreen) fetch(ctx context.Context, req refresh.Request) catalog.Result {
	if req.Selection.IsEmpty() {
		return s.deps.Catalog.Load(ctx, req.Age)
	}
	return s.deps.Catalog.Refresh(ctx, req.Age, req.Selection)
}

func (s *SetupScreen) loadCmd(age int) tea.Cmd {
	src := s.deps.Catalog
	return func() tea.Msg {
		return catalogLoadedMsg{Age: age, Result: src.Load(context.Background(), age)}
	}
}

func waitForRefresh(ch <-chan refresh.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return refreshResultMsg(res)
	}
}

func (s *SetupScreen) applyResult(res catalog.Result) {
	s.stale = res.Stale
	s.warning = ""
	s.errMsg = ""
	switch {
	case res.Catalog != nil:
		s.applyCatalog(res.Catalog)
		if res.Stale {
			s.warning = "Showing saved options. " + api.UserMessage(res.Err, msgOptionsFailed)
		}
	case res.Err != nil && !errors.Is(res.Err, context.Canceled):
		s.errMsg = api.UserMessage(res.Err, msgOptionsFailed)
	}
}

func (s *SetupScreen) applyCatalog(c *fitness.Catalog) {
	next := c.Retain(s.catalog, s.selections.Current())
	for _, o := range s.catalog.Equipment {
		if o.Custom {
			next.Add(o)
		}
	}
	s.catalog = next
	s.syncGroups()
}

func (s *SetupScreen) syncGroups() {
	for i, cat := range fitness.Categories {
		opts := s.catalog.Options(cat)
		if s.deps.Shuffle {
			opts = fitness.Shuffle(opts, s.deps.Seed+uint64(i))
		}
		s.groups[cat].SetOptions(opts)
	}
}

func (s *SetupScreen) submit() tea.Cmd {
	if s.submitting || s.done {
		return nil
	}
	age, _ := s.age.NumericValue()
	sel := s.selections.Current()
	if err := fitness.ValidateSubmission(s.name.Value(), age, sel); err != nil {
		s.errMsg = err.Error()
		return nil
	}

	s.submitting = true
	s.errMsg = ""
	req := submission.Request{
		Name:      s.name.Value(),
		Age:       age,
		Selection: sel,
		Catalog:   s.catalog.Clone(),
	}
	sub := s.deps.Submitter
	return func() tea.Msg {
		sess, err := sub.Submit(context.Background(), req)
		return submitResultMsg{Session: sess, Err: err}
	}
}

func (s *SetupScreen) handleSubmitResult(msg submitResultMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		s.errMsg = api.UserMessage(msg.Err, msgSubmitFailed)
		return s, nil
	}
	s.done = true
	if s.deps.Dashboard == nil {
		return s, nil
	}
	next := s.deps.Dashboard()
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}
