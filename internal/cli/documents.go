package cli

import (
	"context"

	"github.com/dmitrijs2005/resourcehub/internal/dispatch"
)

// Chat sends card arg's document to the PDF chat page.
func (a *App) Chat(ctx context.Context, arg string) error {
	return a.dispatch(ctx, arg, dispatch.ModeChat)
}

// Quiz sends card arg's document to the quiz page.
func (a *App) Quiz(ctx context.Context, arg string) error {
	return a.dispatch(ctx, arg, dispatch.ModeQuiz)
}

func (a *App) dispatch(ctx context.Context, arg string, mode dispatch.Mode) error {
	res, ok := a.cardAt(arg)
	if !ok {
		return nil
	}

	a.printf("Processing %s...\n", res.Name)
	if err := a.dispatcher.Dispatch(ctx, a.sessionID, res, mode); err != nil {
		a.println("Error processing PDF. Please try again.")
		return err
	}
	return nil
}
