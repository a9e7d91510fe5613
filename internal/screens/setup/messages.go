package setup

import (
	"github.com/abhisek/fitplan/internal/catalog"
	"github.com/abhisek/fitplan/internal/fitness"
	"github.com/abhisek/fitplan/internal/refresh"
)

// catalogLoadedMsg carries the result of an immediate (non-debounced) load.
type catalogLoadedMsg struct {
	Age    int
	Result catalog.Result
}

// refreshResultMsg carries a debounced refetch from the controller.
type refreshResultMsg refresh.Result

// submitResultMsg is sent when profile submission finishes.
type submitResultMsg struct {
	Session *fitness.Session
	Err     error
}
