package service

import (
	"fmt"
	"strings"

	"github.com/edirooss/streamforge/internal/domain/settings"
	"github.com/edirooss/streamforge/pkg/forge"
)

// GeneratedBot is the generator's answer. It can be saved as a project.
type GeneratedBot struct {
	Code         string   `json:"code"`
	Explanation  string   `json:"explanation"`
	Dependencies []string `json:"dependencies"`
}

const echoBotExplanation = "【测试模式】这是一个硬编码的回声机器人（Echo Bot）模板。它会重复你发送的消息，并识别主人 ID。\n\n" +
	"由于目前 AI 功能已移除，无论你输入什么提示词，都会生成此模板用于测试环境连通性。"

// BotGenerator produces a runnable Telegram bot for a prompt. The prompt
// is required but does not currently steer the output: every prompt yields
// the echo bot.
type BotGenerator struct{}

// Generate fills the echo bot with the token and owner id from s.
func (BotGenerator) Generate(prompt string, s settings.BotSettings) (GeneratedBot, error) {
	if strings.TrimSpace(prompt) == "" {
		return GeneratedBot{}, fmt.Errorf("%w: prompt is required", ErrInvalid)
	}
	return GeneratedBot{
		Code:         forge.EchoBot(s.Token, s.OwnerID),
		Explanation:  echoBotExplanation,
		Dependencies: []string{"python-telegram-bot"},
	}, nil
}
