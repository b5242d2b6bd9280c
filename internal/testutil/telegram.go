package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// TestBotToken is the token bots built against FakeTelegram use
const TestBotToken = "123456:TEST-TOKEN"

// TelegramCall is a Bot API request received by FakeTelegram
type TelegramCall struct {
	Method string
	Params map[string]any
}

// Param returns a request parameter as a string
func (c TelegramCall) Param(name string) string {
	v, ok := c.Params[name]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// FakeTelegram is an in-process stand-in for the Telegram Bot API
type FakeTelegram struct {
	server *httptest.Server

	mu       sync.Mutex
	calls    []TelegramCall
	failures map[string]string
}

// NewFakeTelegram starts a fake Bot API server that is closed with the test
func NewFakeTelegram(t *testing.T) *FakeTelegram {
	t.Helper()
	f := &FakeTelegram{failures: make(map[string]string)}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

// URL is the base URL to pass as tele.Settings.URL
func (f *FakeTelegram) URL() string {
	return f.server.URL
}

// Client returns the HTTP client of the fake server
func (f *FakeTelegram) Client() *http.Client {
	return f.server.Client()
}

// Fail makes every call to method answer with a Bot API error
func (f *FakeTelegram) Fail(method, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = description
}

// Calls returns every request received so far
func (f *FakeTelegram) Calls() []TelegramCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]TelegramCall(nil), f.calls...)
}

// CallsTo returns the requests received for method
func (f *FakeTelegram) CallsTo(method string) []TelegramCall {
	var out []TelegramCall
	for _, c := range f.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Methods returns the called method names in order
func (f *FakeTelegram) Methods() []string {
	calls := f.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.Method)
	}
	return out
}

// Reset forgets recorded calls
func (f *FakeTelegram) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *FakeTelegram) serve(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	params := make(map[string]any)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		_ = json.NewDecoder(r.Body).Decode(&params)
	} else if err := r.ParseMultipartForm(1 << 20); err == nil {
		for k, v := range r.MultipartForm.Value {
			if len(v) > 0 {
				params[k] = v[0]
			}
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, TelegramCall{Method: method, Params: params})
	description, failing := f.failures[method]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if failing {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":          false,
			"error_code":  400,
			"description": description,
		})
		return
	}

	_, _ = w.Write([]byte(fakeResult(method, params)))
}

func fakeResult(method string, params map[string]any) string {
	chatID := fmt.Sprint(params["chat_id"])
	if chatID == "" || chatID == "<nil>" {
		chatID = "1"
	}

	switch method {
	case "sendMessage":
		text, _ := json.Marshal(fmt.Sprint(params["text"]))
		return fmt.Sprintf(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":%s,"type":"private"},"text":%s}}`, chatID, text)
	case "sendPhoto":
		return fmt.Sprintf(`{"ok":true,"result":{"message_id":2,"date":0,"chat":{"id":%s,"type":"private"},`+
			`"photo":[{"file_id":"generated","file_unique_id":"generated-unique","width":1024,"height":1024}]}}`, chatID)
	case "getMe":
		return `{"ok":true,"result":{"id":123456,"is_bot":true,"first_name":"Test","username":"test_bot"}}`
	default:
		return `{"ok":true,"result":true}`
	}
}
