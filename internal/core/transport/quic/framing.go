package quic

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
// 投递方式
// ════════════════════════════════════════════════════════════════════════════

// delivery 通道在 QUIC 上的投递方式
type delivery int

const (
	// deliveryStream 每通道一条有序流
	deliveryStream delivery = iota
	// deliveryStreamPerMessage 每条消息一条流
	deliveryStreamPerMessage
	// deliveryDatagram 数据报
	deliveryDatagram
	// deliveryDatagramSequenced 数据报，丢弃过期序号
	deliveryDatagramSequenced
	// deliveryDatagramOrStream 数据报，超限时改用单条流
	deliveryDatagramOrStream
)

func (d delivery) String() string {
	switch d {
	case deliveryStream:
		return "stream"
	case deliveryStreamPerMessage:
		return "stream_per_message"
	case deliveryDatagram:
		return "datagram"
	case deliveryDatagramSequenced:
		return "datagram_sequenced"
	case deliveryDatagramOrStream:
		return "datagram_or_stream"
	default:
		return fmt.Sprintf("delivery(%d)", int(d))
	}
}

// deliveryFor 将通道策略翻译为投递方式
func deliveryFor(ct types.ChannelType) delivery {
	switch ct {
	case types.ChannelReliable, types.ChannelReliableUnbundledInstant:
		return deliveryStream
	case types.ChannelReliableUnsequenced:
		return deliveryStreamPerMessage
	case types.ChannelUnreliableSequenced:
		return deliveryDatagramSequenced
	case types.ChannelUnreliableFragmented:
		return deliveryDatagramOrStream
	default:
		return deliveryDatagram
	}
}

// ════════════════════════════════════════════════════════════════════════════
// 数据报
// ════════════════════════════════════════════════════════════════════════════

// datagramHeaderSize 通道 1 字节 + 序号 4 字节
const datagramHeaderSize = 5

// maxDatagramPayload 单个数据报可承载的最大负载
//
// 取初始 MTU 下安全的值，超过时 UnreliableFragmented 改走流。
const maxDatagramPayload = 1100 - datagramHeaderSize

// encodeDatagram 编码数据报
func encodeDatagram(channelID uint8, seq uint32, payload []byte) []byte {
	buf := make([]byte, datagramHeaderSize, datagramHeaderSize+len(payload))
	buf[0] = channelID
	binary.BigEndian.PutUint32(buf[1:], seq)
	return append(buf, payload...)
}

// decodeDatagram 解码数据报，payload 引用 b
func decodeDatagram(b []byte) (channelID uint8, seq uint32, payload []byte, err error) {
	if len(b) < datagramHeaderSize {
		return 0, 0, nil, ErrShortDatagram
	}
	return b[0], binary.BigEndian.Uint32(b[1:datagramHeaderSize]), b[datagramHeaderSize:], nil
}

// seqNewer 比较序号（处理回绕）
func seqNewer(seq, last uint32) bool {
	return int32(seq-last) > 0
}

// ════════════════════════════════════════════════════════════════════════════
// 流帧
// ════════════════════════════════════════════════════════════════════════════

// appendFrame 追加一个 [uvarint len][payload] 帧
func appendFrame(dst, payload []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(payload)))
	return append(dst, payload...)
}

// frameReader 从单向流读取帧
type frameReader struct {
	r     *bufio.Reader
	limit int
}

func newFrameReader(r io.Reader, limit int) *frameReader {
	return &frameReader{r: bufio.NewReader(r), limit: limit}
}

// readHeader 读取流头部的通道 ID
func (f *frameReader) readHeader() (uint8, error) {
	return f.r.ReadByte()
}

// readFrame 读取下一帧到池化数据包中
//
// 流正常结束时返回 io.EOF。
func (f *frameReader) readFrame() (*packet, error) {
	n, err := binary.ReadUvarint(f.r)
	if err != nil {
		return nil, err
	}
	if f.limit > 0 && n > uint64(f.limit) {
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, n, f.limit)
	}

	p := newPacket(int(n))
	if _, err := io.ReadFull(f.r, p.bytes()); err != nil {
		p.Dispose()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return p, nil
}
