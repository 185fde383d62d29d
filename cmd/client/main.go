// Command client is the interactive terminal survey client: signup or login,
// the onboarding survey wizard with a durable local draft, and an advisor
// chat loop once the survey is complete.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	"invested/internal/client"
	"invested/internal/survey"
	"invested/internal/wizard"
)

func main() {
	baseURL := os.Getenv("INVESTED_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("resolve home dir: %v", err)
	}
	stateDir := filepath.Join(home, ".invested")

	api := client.New(baseURL)
	identities := client.NewIdentityStore(filepath.Join(stateDir, "identity.json"))
	drafts := wizard.NewFileStore(filepath.Join(stateDir, "draft.json"))

	ctx := context.Background()
	in := bufio.NewReader(os.Stdin)

	identity, err := signIn(ctx, in, api, identities)
	if err != nil {
		log.Fatalf("sign in: %v", err)
	}
	fmt.Printf("\nWelcome, %s!\n", identity.Email)

	// Initialization protocol: a server-side survey record means the survey
	// is already done; only then is the local draft consulted.
	if _, err := api.GetSurvey(ctx, identity.UserID); err == nil {
		fmt.Println("You've already completed the survey. Taking you to your advisor.")
		_ = drafts.Clear()
	} else if err == client.ErrSurveyNotFound {
		if err := runWizard(ctx, in, api, drafts, identity); err != nil {
			log.Fatalf("survey: %v", err)
		}
	} else {
		log.Fatalf("check survey status: %v", err)
	}

	chatLoop(ctx, in, api, identity)
}

func signIn(ctx context.Context, in *bufio.Reader, api *client.Client, identities *client.IdentityStore) (*client.Identity, error) {
	cached, err := identities.Load()
	if err != nil {
		return nil, err
	}

	var email, password string
	if cached != nil {
		email = cached.Email
		fmt.Printf("Logging in as %s\n", email)
		password = promptPassword("Password: ")
	} else {
		fmt.Print("1) Log in  2) Sign up\nChoose: ")
		choice := readLine(in)
		email = prompt(in, "Email: ")
		if choice == "2" {
			name := prompt(in, "Name (optional): ")
			password = promptPassword("Password (8+ chars, upper, lower, digit): ")
			if _, err := api.Register(ctx, email, password, name); err != nil {
				return nil, err
			}
			fmt.Println("Account created.")
		} else {
			password = promptPassword("Password: ")
		}
	}
	result, err := api.Login(ctx, email, password)
	if err != nil {
		if err == client.ErrUnauthorized {
			// stale cached identity is only a cache
			_ = identities.Clear()
			return nil, fmt.Errorf("invalid email or password")
		}
		return nil, err
	}

	identity := &client.Identity{UserID: result.UserID, Email: result.Email}
	if err := identities.Save(identity); err != nil {
		fmt.Printf("warning: could not cache identity: %v\n", err)
	}
	return identity, nil
}

func runWizard(ctx context.Context, in *bufio.Reader, api *client.Client, drafts wizard.DraftStore, identity *client.Identity) error {
	w, err := wizard.New(survey.Questions, drafts)
	if err != nil {
		return err
	}
	if w.Index() > 0 {
		fmt.Printf("Resuming your survey at question %d of %d.\n", w.Index()+1, w.Len())
	}

	for {
		q := w.Current()
		fmt.Printf("\n[%d/%d] %s\n", w.Index()+1, w.Len(), q.Prompt)
		for i, opt := range q.Options {
			marker := " "
			if w.Selected(opt) {
				marker = "x"
			}
			fmt.Printf("  [%s] %d) %s\n", marker, i+1, opt)
		}
		fmt.Print("Pick a number (n = next, p = previous): ")

		switch input := readLine(in); input {
		case "n":
			submit, err := w.Next()
			if err == wizard.ErrUnanswered {
				fmt.Println("Please answer before moving on.")
				continue
			}
			if err != nil {
				return err
			}
			if submit {
				if _, err := api.UpdateSurvey(ctx, identity.UserID, w.Answers()); err != nil {
					// draft stays intact for retry
					fmt.Printf("Failed to submit survey: %v\nPlease try again.\n", err)
					continue
				}
				if err := w.Reset(); err != nil {
					fmt.Printf("warning: could not clear draft: %v\n", err)
				}
				fmt.Println("\nSurvey complete! Taking you to your advisor.")
				return nil
			}
		case "p":
			w.Previous()
		default:
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 || n > len(q.Options) {
				fmt.Println("Not a valid option.")
				continue
			}
			w.Select(q.Options[n-1])
		}
	}
}

func chatLoop(ctx context.Context, in *bufio.Reader, api *client.Client, identity *client.Identity) {
	fmt.Println("\nAsk Buddy, your financial advisor, anything. Type \"quit\" to leave.")
	for {
		question := prompt(in, "\nYou: ")
		if question == "" {
			continue
		}
		if question == "quit" || question == "exit" {
			if err := api.Logout(ctx); err != nil {
				fmt.Printf("warning: logout failed: %v\n", err)
			}
			fmt.Println("Bye!")
			return
		}
		resp, err := api.Ask(ctx, identity.UserID, question)
		if err != nil {
			fmt.Printf("Advisor unavailable: %v\n", err)
			continue
		}
		fmt.Printf("\nBuddy: %s\n(tokens: %d prompt + %d completion = %d)\n",
			resp.Response,
			resp.TokenUsage.PromptTokens,
			resp.TokenUsage.CompletionTokens,
			resp.TokenUsage.TotalTokens)
	}
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	return readLine(in)
}

func readLine(in *bufio.Reader) string {
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(label string) string {
	fmt.Print(label)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
