package libevt

import (
	"fmt"

	"github.com/fasthttp/websocket"
)

// MessageType mirrors the websocket frame opcodes.
type MessageType byte

const (
	DataMessage   MessageType = websocket.TextMessage
	BinaryMessage MessageType = websocket.BinaryMessage
	CloseMessage  MessageType = websocket.CloseMessage
	PingMessage   MessageType = websocket.PingMessage
	PongMessage   MessageType = websocket.PongMessage
)

func (t MessageType) IsData() bool { return t == DataMessage }

func (t MessageType) IsControl() bool {
	return t == PingMessage || t == PongMessage || t == CloseMessage
}

func (t MessageType) String() string {
	switch t {
	case DataMessage:
		return "data"
	case BinaryMessage:
		return "binary"
	case CloseMessage:
		return "close"
	case PingMessage:
		return "ping"
	case PongMessage:
		return "pong"
	}
	return fmt.Sprintf("MessageType(%d)", byte(t))
}

// Message is the payload of message, ping and pong events.
type Message interface {
	Type() MessageType
	Data() []byte
	String() string
}

type message struct {
	MessageType MessageType
	MessageData []byte
}

func (m message) Type() MessageType { return m.MessageType }

func (m message) Data() []byte { return m.MessageData }

func (m message) String() string {
	return fmt.Sprintf("Message{type=%s,data=%s}", m.MessageType, m.MessageData)
}

func NewMessage(mt MessageType, data []byte) Message {
	return message{MessageType: mt, MessageData: data}
}

func NewDataMessage(data []byte) Message { return NewMessage(DataMessage, data) }

func NewBinaryMessage(data []byte) Message { return NewMessage(BinaryMessage, data) }

func NewPingMessage(data []byte) Message { return NewMessage(PingMessage, data) }

func NewPongMessage(data []byte) Message { return NewMessage(PongMessage, data) }

// NewCloseMessage builds a close frame carrying a status code and a reason.
func NewCloseMessage(code int, text string) Message {
	return NewMessage(CloseMessage, websocket.FormatCloseMessage(code, text))
}
