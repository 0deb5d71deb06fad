package handlers

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ywatanabe-dev/line-support-relay/internal/models"
)

type modalCall struct {
	triggerID string
	token     models.CorrelationToken
}

type fakeModalOpener struct {
	err   error
	calls []modalCall
}

func (f *fakeModalOpener) OpenReplyModal(ctx context.Context, triggerID string, token models.CorrelationToken) error {
	f.calls = append(f.calls, modalCall{triggerID, token})
	return f.err
}

func newSlackTestApp(support SupportService, modals ModalOpener) *fiber.App {
	app := fiber.New()
	app.Post("/slack/interactions", NewSlackHandler(support, modals).HandleInteractions)
	return app
}

func postInteraction(t *testing.T, app *fiber.App, payload string) (int, string) {
	t.Helper()

	form := url.Values{"payload": {payload}}
	req := httptest.NewRequest("POST", "/slack/interactions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHandleInteractionsViewSubmission(t *testing.T) {
	support := &fakeSupport{}
	app := newSlackTestApp(support, &fakeModalOpener{})

	payload := `{
		"type": "view_submission",
		"view": {
			"callback_id": "reply_modal",
			"private_metadata": "{\"replyToken\":\"T1\",\"userId\":\"U1\"}",
			"state": {
				"values": {
					"reply_block": {
						"reply_action": {"value": "Thanks, shipping tomorrow."}
					}
				}
			}
		}
	}`

	status, body := postInteraction(t, app, payload)
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"response_action":"clear"}`, body)

	require.Len(t, support.staffCalls, 1)
	assert.Equal(t, staffCall{"T1", "Thanks, shipping tomorrow."}, support.staffCalls[0])
}

func TestHandleInteractionsViewSubmissionRelayFailure(t *testing.T) {
	support := &fakeSupport{staffErr: errors.New("expired reply token")}
	app := newSlackTestApp(support, &fakeModalOpener{})

	payload := `{
		"type": "view_submission",
		"view": {
			"private_metadata": "{\"replyToken\":\"T1\",\"userId\":\"U1\"}",
			"state": {"values": {"reply_block": {"reply_action": {"value": "hi"}}}}
		}
	}`

	status, _ := postInteraction(t, app, payload)
	assert.Equal(t, 500, status)
}

func TestHandleInteractionsBlockActionsOpensModal(t *testing.T) {
	modals := &fakeModalOpener{}
	app := newSlackTestApp(&fakeSupport{}, modals)

	payload := `{
		"type": "block_actions",
		"trigger_id": "trig-1",
		"actions": [
			{"action_id": "handle_customer", "value": "{\"replyToken\":\"T1\",\"userId\":\"U1\"}"}
		]
	}`

	status, _ := postInteraction(t, app, payload)
	assert.Equal(t, 200, status)

	require.Len(t, modals.calls, 1)
	assert.Equal(t, "trig-1", modals.calls[0].triggerID)
	assert.Equal(t, models.CorrelationToken{ReplyToken: "T1", UserID: "U1"}, modals.calls[0].token)
}

func TestHandleInteractionsBlockActionsModalFailure(t *testing.T) {
	modals := &fakeModalOpener{err: errors.New("invalid_trigger_id")}
	app := newSlackTestApp(&fakeSupport{}, modals)

	payload := `{
		"type": "block_actions",
		"trigger_id": "trig-1",
		"actions": [
			{"action_id": "handle_customer", "value": "{\"replyToken\":\"T1\",\"userId\":\"U1\"}"}
		]
	}`

	status, _ := postInteraction(t, app, payload)
	assert.Equal(t, 500, status)
}

func TestHandleInteractionsUnrecognizedAction(t *testing.T) {
	modals := &fakeModalOpener{}
	app := newSlackTestApp(&fakeSupport{}, modals)

	payload := `{
		"type": "block_actions",
		"trigger_id": "trig-1",
		"actions": [{"action_id": "something_else", "value": "x"}]
	}`

	status, _ := postInteraction(t, app, payload)
	assert.Equal(t, 200, status)
	assert.Empty(t, modals.calls)
}

func TestHandleInteractionsUnknownTypeIsNoOp(t *testing.T) {
	support := &fakeSupport{}
	modals := &fakeModalOpener{}
	app := newSlackTestApp(support, modals)

	status, _ := postInteraction(t, app, `{"type": "shortcut"}`)
	assert.Equal(t, 200, status)
	assert.Empty(t, support.staffCalls)
	assert.Empty(t, modals.calls)
}

func TestHandleInteractionsMalformedPayload(t *testing.T) {
	app := newSlackTestApp(&fakeSupport{}, &fakeModalOpener{})

	status, _ := postInteraction(t, app, "{not json")
	assert.Equal(t, 500, status)
}

func TestHandleInteractionsMalformedTokenInSubmission(t *testing.T) {
	app := newSlackTestApp(&fakeSupport{}, &fakeModalOpener{})

	payload := `{
		"type": "view_submission",
		"view": {"private_metadata": "not json", "state": {"values": {}}}
	}`

	status, _ := postInteraction(t, app, payload)
	assert.Equal(t, 500, status)
}
