package config

import (
	"errors"
	"fmt"

	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

// ChannelsConfig 通道配置
//
// 列表下标即通道 ID，通道数量等于列表长度。
type ChannelsConfig struct {
	// Types 各通道的可靠性策略
	Types []types.ChannelType `json:"types"`
}

// DefaultChannelsConfig 返回默认通道配置（可靠 + 不可靠）
func DefaultChannelsConfig() ChannelsConfig {
	return ChannelsConfig{
		Types: []types.ChannelType{
			types.ChannelReliable,
			types.ChannelUnreliable,
		},
	}
}

// Validate 验证通道配置
func (c ChannelsConfig) Validate() error {
	if len(c.Types) == 0 {
		return errors.New("at least one channel must be configured")
	}
	if len(c.Types) > types.MaxChannels {
		return fmt.Errorf("too many channels: %d (max %d)", len(c.Types), types.MaxChannels)
	}
	for i, ct := range c.Types {
		if !ct.Valid() {
			return fmt.Errorf("channel %d has invalid type %d", i, int(ct))
		}
	}
	return nil
}

// Count 返回通道数量
func (c ChannelsConfig) Count() int {
	return len(c.Types)
}

// WithTypes 设置通道策略列表
func (c ChannelsConfig) WithTypes(ts ...types.ChannelType) ChannelsConfig {
	c.Types = append([]types.ChannelType(nil), ts...)
	return c
}
