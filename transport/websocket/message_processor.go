package websocket

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rocketscienceinc/tictactoe-scores/internal/render"
)

const (
	opContinuation byte = 0x0
	opText         byte = 0x1
	opBinary       byte = 0x2
	opClose        byte = 0x8
	opPing         byte = 0x9
	opPong         byte = 0xA
)

// maxPayloadSize bounds a single client frame; game actions are a few dozen bytes.
const maxPayloadSize = 64 << 10

var (
	errConnectionClosed = errors.New("connection closed by client")
	errPayloadTooLarge  = errors.New("payload too large")
	errBinaryMessage    = errors.New("binary messages are not supported")
	errUnexpectedFrame  = errors.New("unexpected frame")
)

// frame represents a WebSocket frame and its metadata.
type frame struct {
	isFin   bool
	opCode  byte
	length  uint64
	payload []byte
}

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload carries the arguments of client actions.
type RequestPayload struct {
	Cell *int `json:"cell,omitempty"`
}

type ResponsePayload struct {
	Events []EventEnvelope `json:"events,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// EventEnvelope tags a render event with its kind so the browser can dispatch on it.
type EventEnvelope struct {
	Kind render.Kind  `json:"kind"`
	Data render.Event `json:"data"`
}

func eventsResponse(action string, events []render.Event) *Message {
	envelopes := make([]EventEnvelope, 0, len(events))
	for _, event := range events {
		envelopes = append(envelopes, EventEnvelope{Kind: event.Kind(), Data: event})
	}

	return &Message{
		Action:  action,
		Payload: mustMarshal(ResponsePayload{Events: envelopes}),
	}
}

func errorResponse(action, reason string) *Message {
	return &Message{
		Action:  action,
		Payload: mustMarshal(ResponsePayload{Error: reason}),
	}
}

func (that *Server) sendMessage(bufrw *bufio.ReadWriter, response Message) error {
	responseBytes, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	f := frame{
		isFin:   true,
		opCode:  opText,
		length:  uint64(len(responseBytes)),
		payload: responseBytes,
	}

	if err = writeFrame(bufrw, f); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

func mustMarshal(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func writeFrame(bufrw *bufio.ReadWriter, frameData frame) error {
	buf := make([]byte, 2, 10+len(frameData.payload))
	buf[0] |= frameData.opCode

	if frameData.isFin {
		buf[0] |= 0x80
	}

	switch {
	case frameData.length < 126:
		buf[1] |= byte(frameData.length)
	case frameData.length < 1<<16:
		buf[1] |= 126
		buf = binary.BigEndian.AppendUint16(buf, uint16(frameData.length))
	default:
		buf[1] |= 127
		buf = binary.BigEndian.AppendUint64(buf, frameData.length)
	}

	buf = append(buf, frameData.payload...)

	if _, err := bufrw.Write(buf); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if err := bufrw.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return nil
}

// readRequest returns the payload of the next text message, joining fragmented frames. Pings are
// answered inline, a close frame yields errConnectionClosed and a whole binary message yields
// errBinaryMessage.
func (that *Server) readRequest(bufrw *bufio.ReadWriter) ([]byte, error) {
	var (
		message    []byte
		fragmented bool
		binary     bool
	)

	for {
		f, err := readFrame(bufrw)
		if err != nil {
			return nil, err
		}

		switch f.opCode {
		case opClose:
			return nil, errConnectionClosed
		case opPing:
			pong := frame{isFin: true, opCode: opPong, length: f.length, payload: f.payload}
			if err = writeFrame(bufrw, pong); err != nil {
				return nil, err
			}
			continue
		case opPong:
			continue
		case opText, opBinary:
			if fragmented {
				return nil, fmt.Errorf("%w: new message inside a fragmented one", errUnexpectedFrame)
			}
			binary = f.opCode == opBinary
			message = f.payload
		case opContinuation:
			if !fragmented {
				return nil, fmt.Errorf("%w: continuation without a first frame", errUnexpectedFrame)
			}
			if uint64(len(message))+f.length > maxPayloadSize {
				return nil, fmt.Errorf("%w: fragmented message", errPayloadTooLarge)
			}
			message = append(message, f.payload...)
		default:
			return nil, fmt.Errorf("%w: opcode %#x", errUnexpectedFrame, f.opCode)
		}

		if !f.isFin {
			fragmented = true
			continue
		}

		if binary {
			return nil, errBinaryMessage
		}

		return message, nil
	}
}

func readFrame(bufrw *bufio.ReadWriter) (frame, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(bufrw, header); err != nil {
		return frame{}, fmt.Errorf("failed to read header: %w", err)
	}

	finBit := header[0] >> 7
	opCode := header[0] & 0x0f
	maskBit := header[1] >> 7
	payloadLen := header[1] & 0x7f

	size, err := readPayloadLength(bufrw, payloadLen)
	if err != nil {
		return frame{}, err
	}

	mask, err := readMask(bufrw, maskBit)
	if err != nil {
		return frame{}, err
	}

	payload, err := readData(bufrw, size, mask)
	if err != nil {
		return frame{}, err
	}

	return frame{
		isFin:   finBit == 1,
		opCode:  opCode,
		length:  size,
		payload: payload,
	}, nil
}

func readPayloadLength(bufrw *bufio.ReadWriter, payloadLen byte) (uint64, error) {
	switch payloadLen {
	case 126:
		length := make([]byte, 2)
		if _, err := io.ReadFull(bufrw, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}
		return uint64(binary.BigEndian.Uint16(length)), nil
	case 127:
		length := make([]byte, 8)
		if _, err := io.ReadFull(bufrw, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}
		return binary.BigEndian.Uint64(length), nil
	default:
		return uint64(payloadLen), nil
	}
}

func readMask(bufrw *bufio.ReadWriter, maskBit byte) ([]byte, error) {
	if maskBit == 0 {
		return nil, nil
	}

	mask := make([]byte, 4)
	if _, err := io.ReadFull(bufrw, mask); err != nil {
		return nil, fmt.Errorf("failed to read mask: %w", err)
	}

	return mask, nil
}

func readData(bufrw *bufio.ReadWriter, size uint64, mask []byte) ([]byte, error) {
	if size > maxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", errPayloadTooLarge, size)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(bufrw, payload); err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	for i := range payload {
		if mask != nil {
			payload[i] ^= mask[i%4]
		}
	}

	return payload, nil
}
