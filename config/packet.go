package config

import "errors"

// PacketConfig 数据包配置
type PacketConfig struct {
	// PacketCacheSize 单个入站数据包的最大长度
	// 超过该长度的数据包会被整包丢弃，不做部分拷贝
	PacketCacheSize int `json:"packet_cache_size"`

	// InboundQueueLimit 每个连接入站队列的容量上限（0 = 不限制）
	InboundQueueLimit int `json:"inbound_queue_limit"`

	// MaxPacketSize 传输层读取单帧时的硬上限
	// 必须不小于 PacketCacheSize
	MaxPacketSize int `json:"max_packet_size"`
}

// DefaultPacketConfig 返回默认数据包配置
func DefaultPacketConfig() PacketConfig {
	return PacketConfig{
		PacketCacheSize:   65535,   // 64 KB
		InboundQueueLimit: 0,       // 不限制
		MaxPacketSize:     1 << 20, // 1 MB
	}
}

// Validate 验证数据包配置
func (c PacketConfig) Validate() error {
	if c.PacketCacheSize <= 0 {
		return errors.New("packet cache size must be positive")
	}
	if c.InboundQueueLimit < 0 {
		return errors.New("inbound queue limit must not be negative")
	}
	if c.MaxPacketSize < c.PacketCacheSize {
		return errors.New("max packet size must not be smaller than packet cache size")
	}
	return nil
}

// WithPacketCacheSize 设置数据包缓冲大小
func (c PacketConfig) WithPacketCacheSize(size int) PacketConfig {
	c.PacketCacheSize = size
	if c.MaxPacketSize < size {
		c.MaxPacketSize = size
	}
	return c
}

// WithInboundQueueLimit 设置入站队列上限
func (c PacketConfig) WithInboundQueueLimit(limit int) PacketConfig {
	c.InboundQueueLimit = limit
	return c
}
