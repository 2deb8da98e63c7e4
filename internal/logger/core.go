package logger

import (
	"go.uber.org/zap/zapcore"
)

// MongoCore wraps a base core and mirrors warn+ entries into Mongo.
type MongoCore struct {
	zapcore.Core
	writer *MongoLogWriter
}

func NewMongoCore(baseCore zapcore.Core, writer *MongoLogWriter) zapcore.Core {
	return &MongoCore{
		Core:   baseCore,
		writer: writer,
	}
}

func (c *MongoCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if entry.Level >= zapcore.WarnLevel {
		var userID, ip string
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			f.AddTo(enc)
			switch f.Key {
			case "user_id":
				userID = f.String
			case "ip":
				ip = f.String
			}
		}

		c.writer.Push(Entry{
			Level:   entry.Level.String(),
			Message: entry.Message,
			UserID:  userID,
			IP:      ip,
			Caller:  entry.Caller.Function,
		})
	}

	return c.Core.Write(entry, fields)
}

func (c *MongoCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
