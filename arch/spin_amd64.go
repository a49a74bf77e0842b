//go:build amd64

package arch

//go:noescape
func pause()

func spinHint()        { pause() }
func spinHintRelease() {}
