package fx

import (
	"github.com/Fardeen26/flashfeed/internal/repositories/follow"
	"github.com/Fardeen26/flashfeed/internal/repositories/story"
	"github.com/Fardeen26/flashfeed/internal/repositories/storyview"
	"github.com/Fardeen26/flashfeed/internal/repositories/user"
	"go.uber.org/fx"
)

var Module = fx.Options(
	story.Module,
	storyview.Module,
	follow.Module,
	user.Module,
)
