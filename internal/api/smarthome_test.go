package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postFulfillment(t *testing.T, ts *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Post(ts.URL+"/smarthome", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /smarthome error = %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decoding fulfillment response: %v", err)
	}
	return resp, decoded
}

func TestSmartHome_Sync(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).buildRouter())
	defer ts.Close()

	resp, body := postFulfillment(t, ts,
		`{"requestId":"r-1","inputs":[{"intent":"action.devices.SYNC"}]}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["requestId"] != "r-1" {
		t.Errorf("requestId = %v, want r-1", body["requestId"])
	}

	payload, ok := body["payload"].(map[string]any)
	if !ok {
		t.Fatalf("payload type = %T, want object", body["payload"])
	}
	if payload["agentUserId"] != "user-1234" {
		t.Errorf("agentUserId = %v, want user-1234", payload["agentUserId"])
	}
	devices, ok := payload["devices"].([]any)
	if !ok || len(devices) != 1 {
		t.Fatalf("devices = %v, want exactly one", payload["devices"])
	}
	device := devices[0].(map[string]any)
	if device["id"] != "jenkins_job" {
		t.Errorf("device id = %v, want jenkins_job", device["id"])
	}
}

func TestSmartHome_ExecuteThenQuery(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).buildRouter())
	defer ts.Close()

	resp, body := postFulfillment(t, ts, `{
		"requestId": "r-2",
		"inputs": [{
			"intent": "action.devices.EXECUTE",
			"payload": {"commands": [{
				"devices": [{"id": "jenkins_job"}],
				"execution": [{"command": "action.devices.commands.OnOff", "params": {"on": true}}]
			}]}
		}]
	}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("EXECUTE status = %d, want 200", resp.StatusCode)
	}
	commands := body["payload"].(map[string]any)["commands"].([]any)
	result := commands[0].(map[string]any)
	if result["status"] != "SUCCESS" {
		t.Errorf("status = %v, want SUCCESS", result["status"])
	}

	_, queried := postFulfillment(t, ts, `{
		"requestId": "r-3",
		"inputs": [{
			"intent": "action.devices.QUERY",
			"payload": {"devices": [{"id": "jenkins_job"}]}
		}]
	}`)
	state := queried["payload"].(map[string]any)["devices"].(map[string]any)["jenkins_job"].(map[string]any)
	if state["on"] != true {
		t.Errorf("queried on = %v, want true after EXECUTE", state["on"])
	}
	if state["online"] != true {
		t.Errorf("queried online = %v, want true", state["online"])
	}
}

func TestSmartHome_UnsupportedIntent(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).buildRouter())
	defer ts.Close()

	resp, body := postFulfillment(t, ts,
		`{"requestId":"r-4","inputs":[{"intent":"action.devices.DISCONNECT"}]}`)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 with error payload", resp.StatusCode)
	}
	payload := body["payload"].(map[string]any)
	if payload["errorCode"] != "unsupported_intent" {
		t.Errorf("errorCode = %v, want unsupported_intent", payload["errorCode"])
	}
}

func TestSmartHome_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).buildRouter())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/smarthome", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST /smarthome error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed body", resp.StatusCode)
	}
}
