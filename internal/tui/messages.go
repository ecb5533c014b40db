package tui

import "github.com/0wl93/ocean-road-archive/internal/posts"

type postsLoadedMsg struct {
	resp posts.Response
	err  error
}

type openErrMsg struct {
	err error
}
