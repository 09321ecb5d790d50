package emaux

import (
	"errors"
	"net/http"
	"time"
)

// CGI register names understood by the pump controller.
const (
	REGISTER_ALL_READ      = "AllRd"
	REGISTER_ALL_WRITE     = "AllWr"
	REGISTER_RUN_STOP      = "RunStop"
	REGISTER_CURRENT_SPEED = "SetCurrentSpeed"
)

// RunStop register values.
const (
	RUNSTOP_ON  = 1
	RUNSTOP_OFF = 2
)

const DEFAULT_TIMEOUT = 5 * time.Second

var (
	// ErrConnection indicates the pump could not be reached on the local network.
	ErrConnection = errors.New("could not connect to the pump")

	// ErrCommandRejected indicates the pump answered a "set" with a non-OK status.
	ErrCommandRejected = errors.New("pump rejected the command")

	// ErrInvalidSpeed indicates a speed outside the range the drive accepts.
	ErrInvalidSpeed = errors.New("speed out of range for the pump drive")
)

type (
	// Client issues commands to the EpvCgi endpoint of an Emaux SPV pump.
	Client struct {
		Host    string
		baseURL string
		client  *http.Client
	}

	// PumpData is a snapshot of the pump's readable registers.
	PumpData struct {
		Running   bool              `json:"running"`
		SpeedRPM  int               `json:"speed_rpm"`
		Registers map[string]string `json:"registers"`
	}

	// Schedule is one block of the pump's writable schedule registers. The
	// register layout varies between firmware revisions so it is kept opaque.
	Schedule map[string]any
)
