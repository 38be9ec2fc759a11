package connection

// Message 是从传输层数据包拷贝出的一条入站消息
type Message struct {
	// ChannelID 到达的通道
	ChannelID uint8

	// Data 负载（独立拷贝）
	Data []byte
}

// Len 返回负载长度
func (m Message) Len() int {
	return len(m.Data)
}
