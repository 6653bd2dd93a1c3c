// Package ui hosts the gallery in a Fyne window.
package ui

import (
	"fmt"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"fygallery/internal/anim"
	"fygallery/internal/catalog"
	"fygallery/internal/config"
	"fygallery/internal/gallery"
	"fygallery/internal/keywords"
	"fygallery/internal/logging"
	"fygallery/internal/service"
	"fygallery/internal/view"
)

// AppID is the Fyne application identifier.
const AppID = "io.github.fygallery"

// Options configures the gallery window.
type Options struct {
	Config    config.Config
	Logger    *log.Logger
	Scheduler anim.Scheduler          // defaults to the Fyne scheduler
	Keywords  *service.KeywordService // optional, for keyword totals in About
}

// UI holds the widgets of the main window.
type UI struct {
	MainWin    fyne.Window
	mainModKey fyne.KeyModifier

	search     *searchField
	searchBtn  *widget.Button
	resetBtn   *widget.Button
	categories []*categoryButton
	gallery    *galleryRegion
	scroll     *container.Scroll
	pageScroll *pageScroll
	pager      *pager
	modal      *modalSurface
	stats      *statsLine

	statusLogLabel   *widget.Label
	statusLogUpBtn   *widget.Button
	statusLogDownBtn *widget.Button
}

// App represents the whole application with its window, widgets and the
// gallery core driving them.
type App struct {
	app fyne.App
	UI  UI

	cfg          config.Config
	logger       *log.Logger
	catalog      *catalog.Catalog
	view         *view.View
	controller   *gallery.Controller
	thumbs       *ThumbnailManager
	logUIManager *LogUIManager

	ImageService   *service.ImageService
	KeywordService *service.KeywordService
}

// New builds the gallery window for images on fa. The first gallery update
// is scheduled immediately.
func New(fa fyne.App, images []catalog.Image, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = anim.NewFyneScheduler()
	}

	a := &App{
		app:            fa,
		cfg:            opts.Config,
		logger:         logger,
		catalog:        catalog.New(images, opts.Config.ImagesPerPage),
		ImageService:   service.NewImageService(),
		KeywordService: opts.Keywords,
	}
	a.thumbs = NewThumbnailManager(a.ImageService, a.logFromGoroutine)

	a.UI.MainWin = fa.NewWindow("FyGallery")
	if runtime.GOOS == "darwin" {
		a.UI.mainModKey = fyne.KeyModifierSuper
	} else {
		a.UI.mainModKey = fyne.KeyModifierControl
	}

	a.buildWidgets()
	a.view = view.New(a.elements(), sched)
	a.controller = gallery.New(a.catalog, a.view, sched, gallery.WithLogger(logger))

	a.UI.MainWin.SetContent(a.buildMainUI())
	a.UI.MainWin.SetMainMenu(a.buildMainMenu())
	a.buildKeyboardShortcuts()

	w, h := float32(opts.Config.WindowWidth), float32(opts.Config.WindowHeight)
	if w > 0 && h > 0 {
		a.UI.MainWin.Resize(fyne.NewSize(w, h))
	}
	a.addLogMessage(fmt.Sprintf("Loaded %d images", len(images)))
	return a
}

func (a *App) buildWidgets() {
	a.UI.search = newSearchField(func() { a.view.SubmitSearch() })
	a.UI.searchBtn = widget.NewButtonWithIcon("Search", theme.SearchIcon(), func() { a.view.SubmitSearch() })
	a.UI.resetBtn = widget.NewButtonWithIcon("Reset", theme.ContentClearIcon(), func() { a.controller.ResetFilters() })

	for _, id := range categoryIDs(a.cfg.Categories, a.catalog.Categories()) {
		a.UI.categories = append(a.UI.categories, newCategoryButton(id, func(id string) { a.view.SelectCategory(id) }))
	}

	a.UI.gallery = newGalleryRegion(a.thumbs)
	a.UI.scroll = container.NewVScroll(a.UI.gallery.content)
	a.UI.pageScroll = &pageScroll{scroll: a.UI.scroll}
	a.UI.pager = newPager(func() { a.view.PrevPressed() }, func() { a.view.NextPressed() })
	a.UI.modal = newModalSurface(a.UI.MainWin.Canvas(), a.ImageService, a.logFromGoroutine,
		func(t view.OverlayTarget) { a.view.OverlayTapped(t) },
		func() { a.view.ClosePressed() })
	a.UI.stats = &statsLine{label: widget.NewLabel(""), sink: logging.NewStatsSink(a.logger)}

	a.UI.statusLogLabel = widget.NewLabel("")
	a.UI.statusLogLabel.Truncation = fyne.TextTruncateEllipsis
	a.UI.statusLogUpBtn = widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() { a.logUIManager.ShowPreviousLogMessage() })
	a.UI.statusLogDownBtn = widget.NewButtonWithIcon("", theme.MoveDownIcon(), func() { a.logUIManager.ShowNextLogMessage() })
	a.logUIManager = NewLogUIManager(a.logger, a.UI.statusLogLabel, a.UI.statusLogUpBtn, a.UI.statusLogDownBtn, DefaultMaxLogMessages)
	a.logUIManager.UpdateLogDisplay()
}

// elements hands the widgets to the view.
func (a *App) elements() view.Elements {
	controls := make([]view.CategoryControl, 0, len(a.UI.categories))
	for _, c := range a.UI.categories {
		controls = append(controls, c)
	}
	return view.Elements{
		Gallery:    a.UI.gallery,
		Search:     a.UI.search,
		Categories: controls,
		Pager:      a.UI.pager,
		Modal:      a.UI.modal,
		Page:       a.UI.pageScroll,
		Stats:      a.UI.stats,
	}
}

func (a *App) buildMainUI() fyne.CanvasObject {
	searchRow := container.NewBorder(nil, nil, nil,
		container.NewHBox(a.UI.searchBtn, a.UI.resetBtn),
		a.UI.search.entry)

	buttons := make([]fyne.CanvasObject, 0, len(a.UI.categories))
	for _, c := range a.UI.categories {
		buttons = append(buttons, c.button)
	}
	categoryRow := container.NewHScroll(container.NewHBox(buttons...))

	top := container.NewVBox(searchRow, categoryRow, widget.NewSeparator())

	statusRow := container.NewBorder(nil, nil,
		container.NewHBox(a.UI.statusLogUpBtn, a.UI.statusLogDownBtn), nil,
		a.UI.statusLogLabel)
	bottom := container.NewVBox(
		widget.NewSeparator(),
		container.NewBorder(nil, nil, a.UI.pager.container(), a.UI.stats.label),
		statusRow,
	)
	return container.NewBorder(top, bottom, nil, nil, a.UI.scroll)
}

func (a *App) buildMainMenu() *fyne.MainMenu {
	return fyne.NewMainMenu(
		fyne.NewMenu("File"),
		fyne.NewMenu("View",
			fyne.NewMenuItem("Previous Page", func() { a.view.PrevPressed() }),
			fyne.NewMenuItem("Next Page", func() { a.view.NextPressed() }),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Reset Filters", func() { a.controller.ResetFilters() }),
			fyne.NewMenuItem("Browse Keywords", a.showKeywords),
		),
		fyne.NewMenu("Help",
			fyne.NewMenuItem("Keyboard Shortcuts", a.showShortcuts),
			fyne.NewMenuItem("About", a.showAbout),
		),
	)
}

// addLogMessage adds a message to the status line. Call on the UI goroutine.
func (a *App) addLogMessage(message string) {
	if a.logUIManager == nil {
		a.logger.Info(message)
		return
	}
	a.logUIManager.AddLogMessage(message)
}

// logFromGoroutine is the logger handed to background loaders.
func (a *App) logFromGoroutine(message string) {
	fyne.Do(func() { a.addLogMessage(message) })
}

// Window returns the main window.
func (a *App) Window() fyne.Window { return a.UI.MainWin }

// Controller returns the gallery controller.
func (a *App) Controller() *gallery.Controller { return a.controller }

// View returns the presentation view.
func (a *App) View() *view.View { return a.view }

// CreateApplication loads the collection described by cfg and runs the
// gallery window until it is closed.
func CreateApplication(cfg config.Config, logger *log.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}
	logFunc := logging.Func(logger)

	store, err := keywords.Open(cfg.KeywordsDB, logFunc)
	if err != nil {
		return fmt.Errorf("failed to initialize keyword database: %w", err)
	}
	defer func() {
		logger.Debug("closing keyword database")
		if err := store.Close(); err != nil {
			logger.Error("error closing keyword database", "err", err)
		}
	}()
	kw := service.NewKeywordService(store, logFunc)

	images, err := service.NewLibrary(kw, logFunc).Load(service.LibraryOptions{
		Manifest: cfg.Manifest,
		Root:     cfg.Root,
		Include:  cfg.Include,
	})
	if err != nil {
		return err
	}

	fa := app.NewWithID(AppID)
	fa.SetIcon(theme.FileImageIcon())
	fa.Settings().SetTheme(NewGalleryTheme(fa.Settings().Theme()))

	a := New(fa, images, Options{Config: cfg, Logger: logger, Keywords: kw})
	a.UI.MainWin.SetMaster()
	a.UI.MainWin.CenterOnScreen()
	a.UI.MainWin.ShowAndRun()
	return nil
}
