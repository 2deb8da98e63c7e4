package logger

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"greenbasket/internal/config"
	"greenbasket/internal/database"
)

// Entry is the payload handed from the zap core to the background worker.
type Entry struct {
	Level   string
	Message string
	UserID  string
	IP      string
	Caller  string
}

type logDocument struct {
	App       string    `bson:"app"`
	Level     string    `bson:"level"`
	Message   string    `bson:"message"`
	UserID    string    `bson:"user_id,omitempty"`
	IP        string    `bson:"ip,omitempty"`
	Caller    string    `bson:"caller,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

// MongoLogWriter buffers log entries on a channel and writes them from a
// single background goroutine. When the buffer is full entries are dropped
// rather than blocking the caller.
type MongoLogWriter struct {
	collection *mongo.Collection
	entries    chan Entry
	app        string
}

func NewMongoLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *MongoLogWriter {
	writer := &MongoLogWriter{
		collection: mongodb.DB.Collection("app_logs"),
		entries:    make(chan Entry, 1000),
		app:        cfg.AppId,
	}

	go writer.run()

	return writer
}

func (w *MongoLogWriter) Push(entry Entry) {
	select {
	case w.entries <- entry:
	default:
		fmt.Println("log buffer full, dropping:", entry.Message)
	}
}

func (w *MongoLogWriter) run() {
	for entry := range w.entries {
		doc := logDocument{
			App:       w.app,
			Level:     entry.Level,
			Message:   entry.Message,
			UserID:    entry.UserID,
			IP:        entry.IP,
			Caller:    entry.Caller,
			CreatedAt: time.Now().UTC(),
		}

		// Errors are ignored, losing a log line must not take the app down.
		w.collection.InsertOne(context.Background(), doc)
	}
}
