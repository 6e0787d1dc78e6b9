// Package debugui provides a Dear ImGui overlay showing the character,
// timing and device state of a running game.
package debugui

import (
	"fmt"
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/catjump/game"
)

// Overlay owns the ImGui ebiten backend and the frame-time history.
type Overlay struct {
	backend *ebitenbackend.EbitenBackend
	visible bool
	history *FrameHistory
}

// New creates the ImGui backend and its window. It replaces the window
// setup that would otherwise be done through ebiten directly.
func New(title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{
		backend: backend,
		visible: true,
		history: NewFrameHistory(120),
	}
}

func (o *Overlay) BeginFrame() { o.backend.BeginFrame() }

func (o *Overlay) EndFrame() { o.backend.EndFrame() }

func (o *Overlay) Draw(screen *ebiten.Image) { o.backend.Draw(screen) }

func (o *Overlay) Layout(width, height int) { o.backend.Layout(width, height) }

// Toggle shows or hides the overlay windows.
func (o *Overlay) Toggle() { o.visible = !o.visible }

// Visible reports whether the overlay windows are shown.
func (o *Overlay) Visible() bool { return o.visible }

// Render builds the overlay windows for this frame.
func (o *Overlay) Render(snapshot game.Snapshot) {
	o.history.Mark(time.Now())
	if !o.visible {
		return
	}

	renderCharacter(snapshot)
	o.renderPerformance(snapshot)
}

func renderCharacter(snapshot game.Snapshot) {
	if !imgui.BeginV("Character", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	c := snapshot.Character
	imgui.Text(fmt.Sprintf("Position: (%.1f, %.1f)", c.Position.X, c.Position.Y))
	imgui.Text(fmt.Sprintf("Velocity: (%.1f, %.1f)", c.Velocity.X, c.Velocity.Y))
	imgui.Text(fmt.Sprintf("Origin: (%.1f, %.1f)", c.Origin.X, c.Origin.Y))
	imgui.Text(fmt.Sprintf("Grounded: %t", c.Grounded))
	imgui.Text(fmt.Sprintf("Gravity: %.0f  Jump: %.0f", snapshot.Physics.Gravity.Y, -snapshot.Physics.JumpImpulse.Y))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Device: %s", snapshot.DeviceState))
	imgui.Text(fmt.Sprintf("Texture loaded: %t", snapshot.TextureLoaded))
	imgui.Text("Space / left click: jump, F5: lose device, F1: hide")

	imgui.End()
}

func (o *Overlay) renderPerformance(snapshot game.Snapshot) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Frames: %d", snapshot.FrameCount))
	imgui.Text(fmt.Sprintf("Total Time: %.2f s", snapshot.TotalSeconds))
	imgui.Text(fmt.Sprintf("Updates/s: %d", snapshot.FramesPerSecond))

	avg := o.history.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	if samples := o.history.Samples(); len(samples) > 0 {
		imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
	}

	if snapshot.Scheduler != nil && imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			for _, system := range snapshot.Scheduler.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(system.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", system.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(system.AvgDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, singletonType := range snapshot.Storage.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}
