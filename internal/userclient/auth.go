package userclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

type noSignUp struct{}

func (noSignUp) SignUp(context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("signing up is not supported")
}

func (noSignUp) AcceptTermsOfService(_ context.Context, tos tg.HelpTermsOfService) error {
	return &auth.SignUpRequired{TermsOfService: tos}
}

// termAuth answers the login flow with the configured phone number and
// prompts on the terminal for the code and the optional 2FA password.
type termAuth struct {
	noSignUp
	phone string
}

func (a termAuth) Phone(context.Context) (string, error) {
	return a.phone, nil
}

func (termAuth) Password(context.Context) (string, error) {
	return promptLine("Please enter your password: ")
}

func (termAuth) Code(context.Context, *tg.AuthSentCode) (string, error) {
	return promptLine("Please enter the code you received: ")
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
