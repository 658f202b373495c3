// Command voxelstream opens a window, flies a camera over generated terrain
// and streams chunks around it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"voxelstream/internal/config"
	"voxelstream/internal/graphics"
	"voxelstream/internal/input"
	"voxelstream/internal/streaming"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

const (
	winWidth  = 1280
	winHeight = 720
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Printf("[main] %v", err)
		closer.Exit(2)
	}

	if err := run(cfg); err != nil {
		log.Printf("[main] %v", err)
		closer.Exit(1)
	}
}

// run owns every GL resource. Its deferred teardown runs on the locked main
// thread before main decides the exit code; closer cleanups run on their own
// goroutine and only log.
func run(cfg config.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl: %w", err)
	}
	log.Printf("[main] OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	host, err := graphics.NewHost(log.Default())
	if err != nil {
		return err
	}
	defer host.Delete()

	loader, err := streaming.New(cfg, host)
	if err != nil {
		return err
	}
	defer loader.Close()

	closer.Bind(func() {
		s := loader.Stats()
		log.Printf("[main] %d ticks, %d loads, %d unloads, %d generated", s.Ticks, s.Loads, s.Unloads, s.Generated)
	})

	camera := graphics.NewFlyCamera(winWidth, winHeight, mgl32.Vec3{-2, 7.5, 8}, mgl32.Vec3{})
	im := input.NewManager()
	setupInputHandlers(window, camera, im)

	return newViewLoop(window, camera, im, loader, host).Run()
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winWidth, winHeight, "voxelstream", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	glfw.SwapInterval(1)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}

func setupInputHandlers(window *glfw.Window, camera *graphics.FlyCamera, im *input.Manager) {
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if w.GetInputMode(glfw.CursorMode) == glfw.CursorDisabled {
			camera.HandleMouse(xpos, ypos)
		}
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})

	// click to grab the cursor again after Escape
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft && action == glfw.Press {
			w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
			camera.ResetMouse()
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		camera.SetViewport(fbWidth, fbHeight)
	})
}
