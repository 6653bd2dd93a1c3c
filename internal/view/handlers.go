package view

// SearchHandler receives submitted search terms.
type SearchHandler interface {
	OnSearchChange(term string)
}

// CategoryHandler receives category selections.
type CategoryHandler interface {
	OnCategoryChange(category string)
}

// PrevPageHandler receives previous-page requests.
type PrevPageHandler interface {
	OnPrevPage()
}

// NextPageHandler receives next-page requests.
type NextPageHandler interface {
	OnNextPage()
}

// ImageClickHandler receives clicks on gallery cards.
type ImageClickHandler interface {
	OnImageClick(id int)
}

// SearchFunc adapts a function to SearchHandler.
type SearchFunc func(term string)

func (f SearchFunc) OnSearchChange(term string) { f(term) }

// CategoryFunc adapts a function to CategoryHandler.
type CategoryFunc func(category string)

func (f CategoryFunc) OnCategoryChange(category string) { f(category) }

// PrevPageFunc adapts a function to PrevPageHandler.
type PrevPageFunc func()

func (f PrevPageFunc) OnPrevPage() { f() }

// NextPageFunc adapts a function to NextPageHandler.
type NextPageFunc func()

func (f NextPageFunc) OnNextPage() { f() }

// ImageClickFunc adapts a function to ImageClickHandler.
type ImageClickFunc func(id int)

func (f ImageClickFunc) OnImageClick(id int) { f(id) }

// handlers holds at most one subscriber per interaction kind.
type handlers struct {
	search   SearchHandler
	category CategoryHandler
	prev     PrevPageHandler
	next     NextPageHandler
	click    ImageClickHandler
}

// SetSearchHandler registers h, replacing any previous search handler.
func (v *View) SetSearchHandler(h SearchHandler) { v.handlers.search = h }

// SetCategoryHandler registers h, replacing any previous category handler.
func (v *View) SetCategoryHandler(h CategoryHandler) { v.handlers.category = h }

// SetPrevPageHandler registers h, replacing any previous handler.
func (v *View) SetPrevPageHandler(h PrevPageHandler) { v.handlers.prev = h }

// SetNextPageHandler registers h, replacing any previous handler.
func (v *View) SetNextPageHandler(h NextPageHandler) { v.handlers.next = h }

// SetImageClickHandler registers h, replacing any previous handler.
func (v *View) SetImageClickHandler(h ImageClickHandler) { v.handlers.click = h }

// SubmitSearch raises the search interaction with the field's current text.
func (v *View) SubmitSearch() {
	if v.handlers.search == nil {
		return
	}
	term := ""
	if v.el.Search != nil {
		term = v.el.Search.Text()
	}
	v.handlers.search.OnSearchChange(term)
}

// SelectCategory raises the category interaction.
func (v *View) SelectCategory(category string) {
	if v.handlers.category != nil {
		v.handlers.category.OnCategoryChange(category)
	}
}

// PrevPressed raises the previous-page interaction.
func (v *View) PrevPressed() {
	if v.handlers.prev != nil {
		v.handlers.prev.OnPrevPage()
	}
}

// NextPressed raises the next-page interaction.
func (v *View) NextPressed() {
	if v.handlers.next != nil {
		v.handlers.next.OnNextPage()
	}
}

func (v *View) cardClicked(id int) {
	if v.handlers.click != nil {
		v.handlers.click.OnImageClick(id)
	}
}
