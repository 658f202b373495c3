package main

import (
	"fmt"
	"log"
	"time"

	"voxelstream/internal/graphics"
	"voxelstream/internal/input"
	"voxelstream/internal/physics"
	"voxelstream/internal/profiling"
	"voxelstream/internal/streaming"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// frames slower than this get a profiling breakdown in the log
const slowFrame = 50 * time.Millisecond

// viewLoop drives one frame at a time: input, camera, streaming, render.
type viewLoop struct {
	window *glfw.Window
	camera *graphics.FlyCamera
	input  *input.Manager
	loader *streaming.Loader
	host   *graphics.Host

	logProfile bool

	frames   int
	lastFPS  time.Time
	lastTime time.Time
}

func newViewLoop(window *glfw.Window, camera *graphics.FlyCamera, im *input.Manager, loader *streaming.Loader, host *graphics.Host) *viewLoop {
	now := time.Now()
	return &viewLoop{
		window:   window,
		camera:   camera,
		input:    im,
		loader:   loader,
		host:     host,
		lastFPS:  now,
		lastTime: now,
	}
}

// Run loops until the window closes or streaming fails.
func (v *viewLoop) Run() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.53, 0.81, 0.92, 1.0)

	for !v.window.ShouldClose() {
		if err := v.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (v *viewLoop) tick() error {
	profiling.Reset()
	now := time.Now()
	dt := float32(now.Sub(v.lastTime).Seconds())
	v.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
	v.handleActions()

	v.camera.Move(graphics.MoveInput{
		Strafe:  v.input.Axis(input.ActionMoveRight, input.ActionMoveLeft),
		Forward: v.input.Axis(input.ActionMoveForward, input.ActionMoveBackward),
		Lift:    v.input.Axis(input.ActionMoveUp, input.ActionMoveDown),
	}, dt)

	if _, err := v.loader.Tick(v.camera.Position); err != nil {
		return fmt.Errorf("stream at %v: %w", v.camera.Position, err)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	v.host.Render(v.camera.ViewMatrix(), v.camera.ProjectionMatrix())

	func() { defer profiling.Track("glfw.SwapBuffers")(); v.window.SwapBuffers() }()
	v.input.PostUpdate()

	if frame := time.Since(now); frame > slowFrame && v.logProfile {
		log.Printf("[frame] slow %.1fms: %s", float64(frame.Microseconds())/1000, profiling.TopN(5))
	}
	v.updateFPS(now)
	return nil
}

func (v *viewLoop) handleActions() {
	if v.input.JustPressed(input.ActionToggleWireframe) {
		v.host.Wireframe = !v.host.Wireframe
	}
	if v.input.JustPressed(input.ActionToggleProfiling) {
		v.logProfile = !v.logProfile
		log.Printf("[frame] slow-frame profiling %v", v.logProfile)
	}
	if v.input.JustPressed(input.ActionReleaseCursor) {
		v.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (v *viewLoop) updateFPS(now time.Time) {
	v.frames++
	elapsed := now.Sub(v.lastFPS).Seconds()
	if elapsed < 1 {
		return
	}
	chunk, _ := v.loader.Position()
	target := "-"
	if hit := v.pick(); hit.Hit {
		target = fmt.Sprintf("%d,%d,%d", hit.Voxel[0], hit.Voxel[1], hit.Voxel[2])
	}
	v.window.SetTitle(fmt.Sprintf("voxelstream | %d FPS | chunk %v | %d/%d drawn | looking at %s",
		int(float64(v.frames)/elapsed+0.5), chunk, v.host.Drawn(), v.host.Live(), target))
	v.frames = 0
	v.lastFPS = now
}

// pick returns the voxel under the crosshair, using generated chunk data.
func (v *viewLoop) pick() physics.RaycastResult {
	store := v.loader.Registry()
	size := v.loader.Config().ChunkSize
	solid := func(x, y, z int64) bool { return store.SolidAt(x, y, z, size) }
	return physics.Raycast(v.camera.Position, v.camera.Front(), physics.MaxReachDistance, solid)
}
