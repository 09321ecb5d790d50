package emaux

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// NewClient will create a client for the pump reachable at host. A zero
// timeout falls back to DEFAULT_TIMEOUT.
func NewClient(host string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DEFAULT_TIMEOUT
	}

	return &Client{
		Host:    host,
		baseURL: fmt.Sprintf("http://%s/cgi-bin/EpvCgi", host),
		client:  &http.Client{Timeout: timeout},
	}
}

// GetData will read the full register snapshot from the pump.
func (c *Client) GetData(ctx context.Context) (PumpData, error) {
	slog.Debug(">>GetData")
	defer slog.Debug("<<GetData")

	var data PumpData

	body, err := c.sendCommand(ctx, http.MethodGet, REGISTER_ALL_READ, 0, "get")
	if err != nil {
		return data, err
	}

	registers, err := decodeRegisters(body)
	if err != nil {
		return data, fmt.Errorf("failed to parse the pump register snapshot: %w", err)
	}

	data.Registers = registers
	data.Running = registers[REGISTER_RUN_STOP] == strconv.Itoa(RUNSTOP_ON)
	if rpm, err := strconv.Atoi(registers["CurrentSpeed"]); err == nil {
		data.SpeedRPM = rpm
	}

	return data, nil
}

// SetSpeed will set the pump drive to the requested speed in RPM.
func (c *Client) SetSpeed(ctx context.Context, rpm int) error {
	slog.Debug(">>SetSpeed", "rpm", rpm)
	defer slog.Debug("<<SetSpeed")

	if rpm <= 0 {
		return ErrInvalidSpeed
	}

	_, err := c.sendCommand(ctx, http.MethodPost, REGISTER_CURRENT_SPEED, rpm, "set")
	return err
}

// TurnOn will start the pump.
func (c *Client) TurnOn(ctx context.Context) error {
	slog.Debug(">>TurnOn")
	defer slog.Debug("<<TurnOn")

	_, err := c.sendCommand(ctx, http.MethodGet, REGISTER_RUN_STOP, RUNSTOP_ON, "set")
	return err
}

// TurnOff will stop the pump.
func (c *Client) TurnOff(ctx context.Context) error {
	slog.Debug(">>TurnOff")
	defer slog.Debug("<<TurnOff")

	_, err := c.sendCommand(ctx, http.MethodGet, REGISTER_RUN_STOP, RUNSTOP_OFF, "set")
	return err
}

// GetSchedules will read the pump's writable schedule register blocks.
func (c *Client) GetSchedules(ctx context.Context) ([]Schedule, error) {
	slog.Debug(">>GetSchedules")
	defer slog.Debug("<<GetSchedules")

	body, err := c.sendCommand(ctx, http.MethodGet, REGISTER_ALL_WRITE, 0, "get")
	if err != nil {
		return nil, err
	}

	var schedules []Schedule
	if err := json.Unmarshal(body, &schedules); err != nil {
		return nil, fmt.Errorf("failed to parse the pump schedules: %w", err)
	}

	return schedules, nil
}

// sendCommand will issue a single EpvCgi request and return the response body.
func (c *Client) sendCommand(ctx context.Context, method string, name string, val int, cmdType string) ([]byte, error) {
	query := url.Values{}
	query.Set("name", name)
	query.Set("val", strconv.Itoa(val))
	query.Set("type", cmdType)

	// cache-buster the controller expects on every request
	query.Set("time", strconv.FormatInt(utcNowMillis(), 10))

	requestURL := fmt.Sprintf("%s?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if cmdType == "set" {
			return nil, fmt.Errorf("%w: %s returned status %d", ErrCommandRejected, name, resp.StatusCode)
		}

		return nil, fmt.Errorf("%w: %s returned status %d", ErrConnection, name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	return body, nil
}

// decodeRegisters will flatten the AllRd JSON object to a string register map.
// Firmware revisions disagree on whether values are numbers or strings.
func decodeRegisters(body []byte) (map[string]string, error) {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	registers := make(map[string]string, len(raw))
	for name, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			registers[name] = s
			continue
		}

		var n json.Number
		if err := json.Unmarshal(value, &n); err == nil {
			registers[name] = n.String()
			continue
		}

		registers[name] = string(value)
	}

	return registers, nil
}

func utcNowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}
