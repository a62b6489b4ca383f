package main

import (
	"os"
	"path/filepath"

	"github.com/milk9111/ghostrun/prefabs"
)

// watchDirs lists the prefab directories that exist on disk.
func watchDirs() []string {
	var dirs []string
	for _, dir := range []string{"prefabs", filepath.Join("prefabs", "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// pollReload applies prefab edits reported since the last tick. A changed
// player prefab swaps the ability tuning in place; a changed script restarts
// the scripted input. Level edits need a restart.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Warn("prefab watcher error", "err", err)
		default:
			return
		}
	}
}

func (g *Game) applyChange(change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeSpec:
		if !sameFile(change.Path, g.cfg.PlayerPath) {
			g.log.Debug("prefab changed", "path", change.Path)
			return
		}
		spec, err := prefabs.LoadPlayerSpec(g.cfg.PlayerPath)
		if err != nil {
			g.log.Warn("player prefab reload failed", "path", change.Path, "err", err)
			return
		}
		if err := g.world.ReloadTuning(spec.Tuning.Tuning()); err != nil {
			g.log.Warn("tuning reload failed", "err", err)
			return
		}
		g.log.Info("player tuning queued for reload", "path", change.Path)
	case prefabs.ChangeScript:
		if g.cfg.ScriptPath == "" || !sameFile(change.Path, g.cfg.ScriptPath) {
			return
		}
		if err := g.useInput(); err != nil {
			g.log.Warn("script reload failed", "path", change.Path, "err", err)
			return
		}
		g.log.Info("input script reloaded", "path", change.Path)
	}
}

// sameFile matches a watched path against a prefab name that may be bare,
// prefabs/-relative or a path.
func sameFile(changed, name string) bool {
	return filepath.Base(changed) == filepath.Base(name)
}
