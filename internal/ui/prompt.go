package ui

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/go-faster/errors"
)

// Select は選択肢から1つを選ばせる
func Select(message string, options []string) (string, error) {
	var result string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// SelectOption は説明付きの選択肢
type SelectOption struct {
	Label       string
	Description string
}

// SelectIndex は説明付きの選択肢から1つを選ばせ、その位置を返す
// 同じラベルが複数あっても位置で区別できる
func SelectIndex(message string, options []SelectOption, pageSize int) (int, error) {
	if len(options) == 0 {
		return -1, errors.New("no options to select")
	}

	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label
	}

	var index int
	prompt := &survey.Select{
		Message:  message,
		Options:  labels,
		PageSize: pageSize,
		Description: func(_ string, i int) string {
			return options[i].Description
		},
	}
	if err := survey.AskOne(prompt, &index); err != nil {
		return -1, err
	}
	return index, nil
}

// Input はテキスト入力を受け付ける
func Input(message string, defaultValue string) (string, error) {
	var result string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// Confirm は確認プロンプトを表示する
func Confirm(message string, defaultValue bool) (bool, error) {
	var result bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// Password はパスワード入力を受け付ける（入力は非表示）
func Password(message string) (string, error) {
	var result string
	prompt := &survey.Password{
		Message: message,
	}
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return result, nil
}
