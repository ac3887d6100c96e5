package room

// PayloadIn is a message from a connected client
type PayloadIn struct {
	Action         string                 `json:"action"`
	Context        string                 `json:"context"`
	AdditionalData map[string]interface{} `json:"data"`
}

// client actions
const (
	actionCreateRoom    = "createRoom"
	actionJoinRoom      = "joinRoom"
	actionLeaveRoom     = "leaveRoom"
	actionDiscoverRooms = "discoverRooms"
	actionSelectSeat    = "selectSeat"
	actionLeaveSeat     = "leaveSeat"
	actionGameAction    = "action"
	actionGetState      = "getState"
)

// intInData extracts an integer value from the additional data. JSON numbers
// arrive as float64.
func intInData(data map[string]interface{}, key string) (int, bool) {
	raw, ok := data[key]
	if !ok {
		return 0, false
	}

	f, ok := raw.(float64)
	if !ok {
		return 0, false
	}

	return int(f), true
}

func stringInData(data map[string]interface{}, key string) (string, bool) {
	raw, ok := data[key]
	if !ok {
		return "", false
	}

	s, ok := raw.(string)
	return s, ok
}
