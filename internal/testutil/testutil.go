package testutil

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	tele "gopkg.in/telebot.v3"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewObservedLogger creates a logger whose entries can be inspected
func NewObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// NewTextUpdate creates a private-chat text update from userID
func NewTextUpdate(updateID int, userID int64, text string) tele.Update {
	return tele.Update{
		ID: updateID,
		Message: &tele.Message{
			ID:     updateID,
			Sender: &tele.User{ID: userID, FirstName: "Test", Username: "tester"},
			Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
			Text:   text,
		},
	}
}

// NewPhotoUpdate creates a private-chat update carrying a photo and no text
func NewPhotoUpdate(updateID int, userID int64) tele.Update {
	return tele.Update{
		ID: updateID,
		Message: &tele.Message{
			ID:     updateID,
			Sender: &tele.User{ID: userID, FirstName: "Test", Username: "tester"},
			Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
			Photo: &tele.Photo{
				File:   tele.File{FileID: "photo-file", UniqueID: "photo-unique"},
				Width:  640,
				Height: 480,
			},
		},
	}
}

// NewLocationUpdate creates a private-chat update carrying a location and no text
func NewLocationUpdate(updateID int, userID int64) tele.Update {
	return tele.Update{
		ID: updateID,
		Message: &tele.Message{
			ID:       updateID,
			Sender:   &tele.User{ID: userID, FirstName: "Test", Username: "tester"},
			Chat:     &tele.Chat{ID: userID, Type: tele.ChatPrivate},
			Location: &tele.Location{Lat: 59.93, Lng: 30.31},
		},
	}
}
