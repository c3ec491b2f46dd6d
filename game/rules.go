package game

import (
	"github.com/go-gl/mathgl/mgl32"
)

// play is the Playing branch: hop, overlap queries, goal test, then the rules.
func (s *ControlSystem) play(f *frame) error {
	s.hop(f)
	s.detect(f)

	goal, ok := s.registry.Goal()
	if !ok {
		if err := s.applyRules(f); err != nil {
			return err
		}
		return missingEntity(TagGoal)
	}
	if inside(toleranceBox(f.world.Transform(goal), s.Level.GoalTolerance), groundPoint(f.frog)) {
		s.events.Add(EventReachedGoal, goal)
	}
	return s.applyRules(f)
}

// applyRules consumes the frame's events in order. A transition out of Playing
// ends the frame's rule processing.
func (s *ControlSystem) applyRules(f *frame) error {
	cues := s.app.Cues()
	for _, ev := range s.events {
		switch ev.Kind {
		case EventSplash:
			cues.Play(CueSplash, false, false)
			if s.Level.Rules.WaterDrowns {
				return s.hit(f)
			}
		case EventHitHazard:
			return s.hit(f)
		case EventTimerExpired:
			s.lose()
			return nil
		case EventCollectedStar:
			f.world.MarkForRemoval(ev.Entity)
			cues.Play(CueStar, false, false)
			s.setEffect(f, EffectFlash)
			s.app.SetCheckpoints(s.app.Checkpoints() + 1)
		case EventReachedGoal:
			s.app.SetGameState(Win)
			cues.Play(CueWin, false, true)
			return nil
		}
	}
	return nil
}

// hit costs a life. The last life ends the session, otherwise the skull drops
// from above the camera and the frog respawns once it lands.
func (s *ControlSystem) hit(f *frame) error {
	s.app.Cues().Play(CueHit, false, false)

	lives := s.app.Lives()
	if lives <= 1 {
		s.app.SetLives(0)
		s.lose()
		return nil
	}

	skull, ok := s.registry.Skull()
	if !ok {
		return missingEntity(TagSkull)
	}
	s.app.SetLives(lives - 1)
	s.app.SetGameState(GameOver)
	s.hazard = true
	f.world.Transform(skull).Position = f.camera.Position.Add(s.Level.SkullOffset)
	s.setEffect(f, EffectDamage)
	return nil
}

func (s *ControlSystem) lose() {
	s.app.SetGameState(Lost)
	s.app.ChangeState(StateLose)
}

// rise is the Win branch: goal, frog and camera float up until the camera is high enough.
func (s *ControlSystem) rise(f *frame) error {
	goal, ok := s.registry.Goal()
	if !ok {
		return missingEntity(TagGoal)
	}

	lift := mgl32.Vec3{0, s.Level.WinRiseSpeed * f.dt, 0}
	goalT := f.world.Transform(goal)
	goalT.Position = goalT.Position.Add(lift)
	f.frog.Position = f.frog.Position.Add(lift)
	f.camera.Position = f.camera.Position.Add(lift)

	if f.camera.Position.Y() < s.Level.WinHeight {
		return nil
	}
	s.events.Add(EventWinComplete, goal)

	if s.Level.OnWin == OnWinShell {
		s.app.ChangeState(StateWin)
		return nil
	}
	s.app.SetGameState(Playing)
	if err := s.app.ReloadScene(f.world); err != nil {
		return err
	}
	s.Reset(f.world)
	return nil
}

// recover is the GameOver branch: the skull falls and, once it lands, the frog is put
// back on the current checkpoint with the camera keeping its offset on the ground plane.
func (s *ControlSystem) recover(f *frame) error {
	skull, ok := s.registry.Skull()
	if !ok {
		return missingEntity(TagSkull)
	}

	skullT := f.world.Transform(skull)
	skullT.Position[1] -= s.Level.SkullFallSpeed * f.dt
	if skullT.Position.Y() >= s.Level.SkullFloor {
		return nil
	}

	cp := s.Level.Checkpoint(s.app.Checkpoints())
	offsetX := f.camera.Position.X() - f.frog.Position.X()
	offsetZ := f.camera.Position.Z() - f.frog.Position.Z()

	f.frog.Position = mgl32.Vec3{cp.X, s.Level.FrogBaseHeight, cp.Z}
	f.camera.Position[0] = cp.X + offsetX
	f.camera.Position[2] = cp.Z + offsetZ
	skullT.Position = f.camera.Position.Add(s.Level.SkullOffset)

	s.hazard = false
	s.app.SetGameState(Playing)
	s.events.Add(EventRespawned, f.frogId)
	return nil
}

// setEffect turns a renderer effect on for the configured wall clock duration.
func (s *ControlSystem) setEffect(f *frame, effect Effect) {
	if f.renderer == nil {
		return
	}
	f.renderer.SetEffect(effect, true)
	s.effectOn[effect] = true
	s.effectUntil[effect] = f.now + s.Level.EffectDuration
}

func (s *ControlSystem) expireEffects(renderer Renderer, now float64) {
	if renderer == nil {
		return
	}
	for e := range s.effectOn {
		if s.effectOn[e] && now >= s.effectUntil[e] {
			renderer.SetEffect(Effect(e), false)
			s.effectOn[e] = false
		}
	}
}
