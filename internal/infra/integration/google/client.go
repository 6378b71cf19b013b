package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/ansluta-crm/internal/entity"
	"github.com/xavierca1/ansluta-crm/internal/usecase"
)

const (
	authEndpoint     = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenEndpoint    = "https://oauth2.googleapis.com/token"
	calendarEndpoint = "https://www.googleapis.com/calendar/v3/calendars/primary/events"
)

var oauthScopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// Client talks to Google's OAuth and Calendar APIs.
type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
}

func NewClient(clientID, clientSecret, redirectURI string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthURL builds the consent URL the frontend redirects the user to.
func (c *Client) AuthURL() string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("response_type", "code")
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")
	params.Set("scope", strings.Join(oauthScopes, " "))
	return authEndpoint + "?" + params.Encode()
}

// ExchangeCode trades an authorization code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("redirect_uri", c.redirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google token exchange returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var tokens TokenResponse
	if err := json.Unmarshal(respBody, &tokens); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	return &tokens, nil
}

// CreateEvent inserts the meeting on the user's primary calendar with a
// Meet conference attached, emailing invitations to all attendees.
func (c *Client) CreateEvent(ctx context.Context, accessToken string, meeting *entity.Meeting) (*usecase.CalendarEvent, error) {
	start, err := meeting.StartsAt()
	if err != nil {
		return nil, err
	}
	end, err := meeting.EndsAt()
	if err != nil {
		return nil, err
	}

	event := calendarEventRequest{
		Summary:     meeting.Title,
		Description: meeting.Description,
		Start:       eventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: "UTC"},
		End:         eventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: "UTC"},
		ConferenceData: &conferenceData{
			CreateRequest: &createConferenceRequest{
				RequestID:             fmt.Sprintf("meet-%s", meeting.ID),
				ConferenceSolutionKey: conferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
		Reminders: &eventReminders{
			UseDefault: false,
			Overrides: []reminderOverride{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 15},
			},
		},
	}

	for _, email := range strings.Split(meeting.Attendees, ",") {
		email = strings.TrimSpace(email)
		if email != "" {
			event.Attendees = append(event.Attendees, eventAttendee{Email: email})
		}
	}

	body, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	endpoint := calendarEndpoint + "?conferenceDataVersion=1&sendUpdates=all"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("google calendar: %s (code %d)", apiErr.Error.Message, apiErr.Error.Code)
		}
		return nil, fmt.Errorf("google calendar returned status %d", resp.StatusCode)
	}

	var created calendarEventResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("failed to parse calendar response: %w", err)
	}

	result := &usecase.CalendarEvent{EventID: created.ID}
	if created.ConferenceData != nil {
		for _, entry := range created.ConferenceData.EntryPoints {
			if entry.EntryPointType == "video" {
				result.MeetingLink = entry.URI
				break
			}
		}
	}
	return result, nil
}
