package identify

import (
	"errors"
	"fmt"
	"io"

	"github.com/multiformats/go-varint"
	"google.golang.org/protobuf/proto"

	pb "github.com/dep2p/go-identify/pkg/lib/proto/identify"
)

// ============================================================================
//                              消息帧编解码
// ============================================================================
//
// 线上格式：无符号 varint 长度前缀 + protobuf 编码的消息体。
// 每条流只承载一个消息帧，后续字节被忽略。

// ReadMessage 从流中读取一个 identify 消息帧并解码
//
// 长度前缀超过 maxSize 时立即失败，不为消息体分配内存。
func ReadMessage(r io.Reader, maxSize int) (*pb.Identify, error) {
	body, err := readFrame(r, maxSize)
	if err != nil {
		return nil, err
	}

	msg := &pb.Identify{}
	if err := proto.Unmarshal(body, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return msg, nil
}

// ReadPushMessage 从流中读取一个 push 消息帧并解码
func ReadPushMessage(r io.Reader, maxSize int) (*pb.Push, error) {
	body, err := readFrame(r, maxSize)
	if err != nil {
		return nil, err
	}

	msg := &pb.Push{}
	if err := proto.Unmarshal(body, msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return msg, nil
}

// WriteMessage 编码消息并作为一个消息帧写入流
func WriteMessage(w io.Writer, msg proto.Message) error {
	body, err := proto.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	buf := make([]byte, varint.UvarintSize(uint64(len(body)))+len(body))
	n := varint.PutUvarint(buf, uint64(len(body)))
	copy(buf[n:], body)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write identify frame: %w", err)
	}
	return nil
}

// readFrame 读取一个长度前缀消息帧的消息体
func readFrame(r io.Reader, maxSize int) ([]byte, error) {
	length, err := varint.ReadUvarint(byteReader{r})
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrConnectionEnded
		}
		return nil, fmt.Errorf("%w: bad length prefix: %v", ErrInvalidMessage, err)
	}

	if length > uint64(maxSize) {
		return nil, fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, length, maxSize)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ErrConnectionEnded
	}
	return buf, nil
}

// byteReader 将 io.Reader 适配为 io.ByteReader
//
// varint 解码逐字节读取，避免越过长度前缀消费消息体。
type byteReader struct {
	r io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(b.r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
