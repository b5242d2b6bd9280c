package webhook

import (
	"errors"
	"net/http"
	"testing"

	"smartzenbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type mockRegistrar struct {
	mock.Mock
}

func (m *mockRegistrar) SetWebhook(w *tele.Webhook) error {
	args := m.Called(w)
	return args.Error(0)
}

func (m *mockRegistrar) RemoveWebhook(dropPending ...bool) error {
	args := m.Called()
	return args.Error(0)
}

const publicURL = "https://bot.example.com" + testPath

func TestLifecycle_Register(t *testing.T) {
	registrar := new(mockRegistrar)
	registrar.On("SetWebhook", mock.MatchedBy(func(w *tele.Webhook) bool {
		return w.Endpoint != nil &&
			w.Endpoint.PublicURL == publicURL &&
			w.SecretToken == testSecret &&
			w.DropUpdates
	})).Return(nil)
	registrar.On("RemoveWebhook").Return(nil)

	l := NewLifecycle(registrar, publicURL, testSecret, true, &http.Client{}, testutil.NewTestLogger())

	assert.NoError(t, l.Register())
	assert.NoError(t, l.Stop())

	registrar.AssertExpectations(t)
}

func TestLifecycle_RegisterFailureIsReturned(t *testing.T) {
	registrar := new(mockRegistrar)
	registrar.On("SetWebhook", mock.Anything).Return(errors.New("telegram: bad webhook: HTTPS url must be provided"))

	logger, logs := testutil.NewObservedLogger()
	l := NewLifecycle(registrar, publicURL, testSecret, false, nil, logger)

	assert.Error(t, l.Register())
	assert.Equal(t, 1, logs.FilterMessage("Failed to register webhook").Len())

	// Nothing was registered, so nothing is removed
	assert.NoError(t, l.Stop())
	registrar.AssertNotCalled(t, "RemoveWebhook")
}

func TestLifecycle_NoPublicURL(t *testing.T) {
	registrar := new(mockRegistrar)

	l := NewLifecycle(registrar, "", testSecret, true, nil, testutil.NewTestLogger())

	assert.ErrorIs(t, l.Register(), ErrNoPublicURL)
	registrar.AssertNotCalled(t, "SetWebhook", mock.Anything)
}

func TestLifecycle_StopReportsRemoveFailure(t *testing.T) {
	registrar := new(mockRegistrar)
	registrar.On("SetWebhook", mock.Anything).Return(nil)
	registrar.On("RemoveWebhook").Return(errors.New("connection refused"))

	l := NewLifecycle(registrar, publicURL, testSecret, true, nil, testutil.NewTestLogger())

	require.NoError(t, l.Register())
	assert.Error(t, l.Stop())
}

func TestLifecycle_AgainstBotAPI(t *testing.T) {
	tg := testutil.NewFakeTelegram(t)
	bot, err := tele.NewBot(tele.Settings{
		URL:     tg.URL(),
		Token:   testutil.TestBotToken,
		Client:  tg.Client(),
		Offline: true,
	})
	require.NoError(t, err)

	l := NewLifecycle(bot, publicURL, testSecret, true, tg.Client(), testutil.NewTestLogger())

	require.NoError(t, l.Register())
	require.NoError(t, l.Stop())

	assert.Equal(t, []string{"setWebhook", "deleteWebhook"}, tg.Methods())

	set := tg.CallsTo("setWebhook")[0]
	assert.Equal(t, publicURL, set.Param("url"))
	assert.Equal(t, testSecret, set.Param("secret_token"))
	assert.Equal(t, "true", set.Param("drop_pending_updates"))
}

func TestLifecycle_BotAPIError(t *testing.T) {
	tg := testutil.NewFakeTelegram(t)
	tg.Fail("setWebhook", "Bad Request: bad webhook: Failed to resolve host")

	bot, err := tele.NewBot(tele.Settings{
		URL:     tg.URL(),
		Token:   testutil.TestBotToken,
		Client:  tg.Client(),
		Offline: true,
	})
	require.NoError(t, err)

	l := NewLifecycle(bot, publicURL, testSecret, false, tg.Client(), testutil.NewTestLogger())

	assert.Error(t, l.Register())
	assert.NoError(t, l.Stop())
	assert.Equal(t, []string{"setWebhook"}, tg.Methods())
}
