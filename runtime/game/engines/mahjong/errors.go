package mahjong

import "errors"

// 牌谱格式错误, 总是致命的, 不会被静默修正
var (
	ErrTileFormat = errors.New("malformed tile")
	ErrMeldFormat = errors.New("malformed meld")
)

// 手牌状态错误, 非严格模式下可以绕过
var (
	ErrTileOverflow  = errors.New("tile kind exceeds four copies")
	ErrTileNotExist  = errors.New("tile not in hand")
	ErrHandOverflow  = errors.New("hand already holds a pending tile")
	ErrHandUnderflow = errors.New("hand has no pending tile")
)

// 操作与规则错误
var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalidRule      = errors.New("invalid rule option")
)
