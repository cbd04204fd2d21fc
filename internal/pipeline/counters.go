package pipeline

import "strconv"

// Counters tracks the chapter, page and sub-page position during a single
// left-to-right pass. Each transition resets the levels below it.
type Counters struct {
	Chapter int
	Page    int
	SubPage int
}

// OnChapter enters a new chapter and returns its id, c<N>.
func (c *Counters) OnChapter() string {
	c.Chapter++
	c.Page = 0
	c.SubPage = 0
	return c.ChapterID()
}

// OnPage enters a new page of the current chapter and returns c<N>p<M>.
func (c *Counters) OnPage() string {
	c.Page++
	c.SubPage = 0
	return c.PageID()
}

// OnSubPage enters a new sub-page of the current page and returns
// c<N>p<M>s<K>.
func (c *Counters) OnSubPage() string {
	c.SubPage++
	return c.PageID() + "s" + strconv.Itoa(c.SubPage)
}

// ChapterID returns the id of the current chapter.
func (c *Counters) ChapterID() string {
	return "c" + strconv.Itoa(c.Chapter)
}

// PageID returns the id of the current page.
func (c *Counters) PageID() string {
	return c.ChapterID() + "p" + strconv.Itoa(c.Page)
}
