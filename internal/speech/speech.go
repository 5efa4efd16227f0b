// Package speech builds the response envelopes returned to the voice platform.
package speech

import (
	"strings"

	"github.com/pricofy/video-releases-skill/internal/domain"
)

// Version is the response protocol version.
const Version = "1.0"

const (
	plainText  = "PlainText"
	simpleCard = "Simple"

	// CardTitlePrefix is prepended to every card title.
	CardTitlePrefix = "Prime Video - "
)

// Fixed copy spoken by the skill.
const (
	WelcomeTitle = "Welcome"
	WelcomeText  = "Welcome to Prime Video for Alexa, " +
		"I can tell you about the newest movie releases on Amazon Video by saying, " +
		"Alexa ask Prime Video for the newest movies."
	// WelcomeReprompt is spoken if the user does not reply to the welcome or is not understood.
	WelcomeReprompt = "Please ask for new releases by asking, what are the latest movies?"

	NewReleasesTitle  = "New Releases"
	NewReleasesPrefix = "Here are the latest releases to Amazon Video: "
	FetchApology      = "Sorry, I encountered errors fetching the Amazon Video top sellers for you."
)

// BuildSpeechletResponse assembles the spoken, card and reprompt parts of a response.
// The reprompt is omitted when repromptText is empty.
func BuildSpeechletResponse(title, output, repromptText string, shouldEndSession bool) domain.SpeechletResponse {
	r := domain.SpeechletResponse{
		OutputSpeech: domain.OutputSpeech{Type: plainText, Text: output},
		Card: domain.Card{
			Type:    simpleCard,
			Title:   CardTitlePrefix + title,
			Content: output,
		},
		ShouldEndSession: shouldEndSession,
	}
	if repromptText != "" {
		r.Reprompt = &domain.Reprompt{
			OutputSpeech: domain.OutputSpeech{Type: plainText, Text: repromptText},
		}
	}
	return r
}

// BuildResponse wraps a speechlet response into the versioned envelope.
func BuildResponse(sessionAttributes map[string]any, r domain.SpeechletResponse) *domain.Envelope {
	if sessionAttributes == nil {
		sessionAttributes = map[string]any{}
	}
	return &domain.Envelope{
		Version:           Version,
		SessionAttributes: sessionAttributes,
		Response:          r,
	}
}

// Welcome returns the greeting used for launches and help requests.
func Welcome() *domain.Envelope {
	return BuildResponse(nil, BuildSpeechletResponse(WelcomeTitle, WelcomeText, WelcomeReprompt, false))
}

// NewReleases returns the closing response listing titles in the order given.
func NewReleases(titles []string) *domain.Envelope {
	return BuildResponse(nil, BuildSpeechletResponse(NewReleasesTitle, NewReleasesText(titles), "", true))
}

// FetchFailed returns the closing apology used when the catalog lookup fails.
func FetchFailed() *domain.Envelope {
	return BuildResponse(nil, BuildSpeechletResponse(NewReleasesTitle, FetchApology, "", true))
}

// NewReleasesText is the fixed prefix followed by each title and ". ".
func NewReleasesText(titles []string) string {
	var b strings.Builder
	b.WriteString(NewReleasesPrefix)
	for _, title := range titles {
		b.WriteString(title)
		b.WriteString(". ")
	}
	return b.String()
}
