package desktop

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/conorfennell/namepick/internal/domain"
	"github.com/conorfennell/namepick/internal/session"
)

const appID = "io.github.conorfennell.namepick"

type uiState struct {
	app     fyne.App
	session *session.Session
	ctx     context.Context

	w          fyne.Window
	accepted   []string
	acceptList *widget.List
	remaining  *widget.Label
	candidate  *widget.Label
	statusBind binding.String

	acceptBtn   *widget.Button
	refuseBtn   *widget.Button
	saveBtn     *widget.Button
	saveQuitBtn *widget.Button
	quitBtn     *widget.Button
}

// Run opens the review window and blocks until it is closed.
func Run(ctx context.Context, sess *session.Session) error {
	a := fyneapp.NewWithID(appID)
	u := buildUI(ctx, a, sess)
	u.w.ShowAndRun()
	return nil
}

func buildUI(ctx context.Context, a fyne.App, sess *session.Session) *uiState {
	u := &uiState{app: a, session: sess, ctx: ctx}
	u.w = a.NewWindow("取名字")

	u.statusBind = binding.NewString()
	u.acceptList = widget.NewList(
		func() int { return len(u.accepted) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(u.accepted[id])
		},
	)

	u.remaining = widget.NewLabel("")
	u.candidate = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	u.acceptBtn = widget.NewButton("✔", func() { u.onDecide(domain.Accept) })
	u.refuseBtn = widget.NewButton("✖", func() { u.onDecide(domain.Refuse) })
	u.saveBtn = widget.NewButtonWithIcon("儲存", theme.DocumentSaveIcon(), func() { u.onSave(false) })
	u.saveQuitBtn = widget.NewButtonWithIcon("儲存後離開", theme.DocumentSaveIcon(), func() { u.onSave(true) })
	u.quitBtn = widget.NewButtonWithIcon("離開", theme.CancelIcon(), func() { u.onQuit() })

	review := container.NewGridWithColumns(3,
		u.remaining,
		u.candidate,
		container.NewGridWithColumns(2, u.acceptBtn, u.refuseBtn),
	)
	controls := container.NewHBox(
		widget.NewLabelWithData(u.statusBind),
		layout.NewSpacer(),
		u.saveBtn,
		u.saveQuitBtn,
		u.quitBtn,
	)
	top := container.NewBorder(
		widget.NewLabelWithStyle("還不錯", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		u.acceptList,
	)

	u.w.SetContent(container.NewBorder(nil, container.NewVBox(review, controls), nil, nil, top))
	u.w.Resize(fyne.NewSize(480, 560))
	u.refresh()
	return u
}

// refresh redraws everything from the session.
func (u *uiState) refresh() {
	u.accepted = u.accepted[:0]
	for _, p := range u.session.Accepted() {
		u.accepted = append(u.accepted, p.String())
	}
	u.acceptList.Refresh()

	u.remaining.SetText(fmt.Sprintf("%d", u.session.Remaining()))
	if p, ok := u.session.Current(); ok {
		u.candidate.SetText(p.String())
		u.acceptBtn.Enable()
		u.refuseBtn.Enable()
	} else {
		u.candidate.SetText("")
		u.acceptBtn.Disable()
		u.refuseBtn.Disable()
		_ = u.statusBind.Set("nothing left to review")
	}
}

func (u *uiState) onDecide(o domain.Outcome) {
	if _, err := u.session.Decide(o); err != nil {
		slog.Warn("Decision rejected", "outcome", o.String(), "error", err)
		dialog.ShowError(err, u.w)
		return
	}
	_ = u.statusBind.Set("")
	u.refresh()
}

func (u *uiState) onSave(quit bool) {
	if err := u.session.Save(u.ctx); err != nil {
		dialog.ShowError(err, u.w)
		return
	}
	_ = u.statusBind.Set("saved")
	if quit {
		u.app.Quit()
	}
}

func (u *uiState) onQuit() {
	if u.session.Dirty() {
		slog.Warn("Quitting with unsaved decisions", "unsaved", u.session.Stats().Unsaved)
	}
	u.app.Quit()
}
