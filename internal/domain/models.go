// Package domain contains the core domain types for the video releases skill.
package domain

// Request types sent by the voice platform.
const (
	LaunchRequest       = "LaunchRequest"
	IntentRequest       = "IntentRequest"
	SessionEndedRequest = "SessionEndedRequest"
)

// Intent names handled by the skill.
const (
	IntentGetNewReleases = "GetNewReleases"
	IntentHelp           = "AMAZON.HelpIntent"
)

// Event is the inbound voice-platform event.
type Event struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Request `json:"request"`
}

// Session is the caller-tracked conversational context.
type Session struct {
	New         bool           `json:"new"`
	SessionID   string         `json:"sessionId"`
	Application Application    `json:"application"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	User        User           `json:"user"`
}

// Application identifies the skill the event was sent to.
type Application struct {
	ApplicationID string `json:"applicationId"`
}

// User identifies the account that spoke to the device.
type User struct {
	UserID string `json:"userId"`
}

// Request is a tagged variant over the request types; Intent is set only
// for IntentRequest and Reason only for SessionEndedRequest.
type Request struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId"`
	Timestamp string  `json:"timestamp,omitempty"`
	Locale    string  `json:"locale,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// IntentName returns the intent name, or "" when the request carries no intent.
func (r Request) IntentName() string {
	if r.Intent == nil {
		return ""
	}
	return r.Intent.Name
}

// Intent is a caller-classified user goal.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

// Slot is a named parameter extracted from the utterance.
type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// Envelope is the response document returned to the voice platform.
type Envelope struct {
	Version           string            `json:"version"`
	SessionAttributes map[string]any    `json:"sessionAttributes"`
	Response          SpeechletResponse `json:"response"`
}

// SpeechletResponse is the spoken and displayed part of a response.
type SpeechletResponse struct {
	OutputSpeech     OutputSpeech `json:"outputSpeech"`
	Card             Card         `json:"card"`
	Reprompt         *Reprompt    `json:"reprompt,omitempty"`
	ShouldEndSession bool         `json:"shouldEndSession"`
}

// OutputSpeech is text rendered to speech by the platform.
type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Card is shown in the companion app.
type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Reprompt is spoken when the user does not answer.
type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}
