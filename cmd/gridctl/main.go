package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"crm2grid/internal/app"
	"crm2grid/internal/logging"
	"crm2grid/internal/nav"
	"crm2grid/internal/platform"
)

type options struct {
	configPath   string
	scenarioPath string
	format       string
	navBase      string
	sibling      bool
	record       string
	object       string
	relationship string
	recordType   string
	parentObject string
	parentField  string
	parallel     int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "configs/config.yaml", "配置文件路径，不存在时使用默认配置")
	flag.StringVar(&opts.scenarioPath, "scenario", "", "场景文件路径，留空时使用内置演示数据")
	flag.StringVar(&opts.format, "format", "table", "输出格式: table|json|csv")
	flag.StringVar(&opts.navBase, "nav-base", "https://crm.example.com", "模板导航器的基础地址")
	flag.BoolVar(&opts.sibling, "sibling", false, "按同父变体查询")
	flag.StringVar(&opts.record, "record", "", "记录标识")
	flag.StringVar(&opts.object, "object", "", "记录所属对象")
	flag.StringVar(&opts.relationship, "relationship", "", "相关列表关系名")
	flag.StringVar(&opts.recordType, "record-type", "", "记录类型标识")
	flag.StringVar(&opts.parentObject, "parent-object", "", "父对象名，同父变体必填")
	flag.StringVar(&opts.parentField, "parent-field", "", "指向父记录的字段名，同父变体必填")
	flag.IntVar(&opts.parallel, "parallel", 0, "行投影并发度，0 为顺序执行")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}
	cmd := flag.Arg(0)

	logger, err := logging.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fillDefaultParams(&opts)

	switch cmd {
	case "columns", "rows", "view":
		svc, err := buildService(opts, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "构建服务失败: %v\n", err)
			os.Exit(1)
		}
		err = runOnce(ctx, svc, opts, cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s 执行失败: %v\n", cmd, err)
			os.Exit(1)
		}
	case "watch":
		if err := runWatch(ctx, opts, logger); err != nil {
			fmt.Fprintf(os.Stderr, "watch 执行失败: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("用法: gridctl [flags] {columns|rows|view|watch}")
	fmt.Println("  columns  只输出列描述")
	fmt.Println("  rows     只输出投影后的行数据")
	fmt.Println("  view     输出完整视图（标题、列、行、查看全部链接）")
	fmt.Println("  watch    监听场景文件变化并持续重渲染，需要 -scenario")
	flag.PrintDefaults()
}

// fillDefaultParams 在查询参数全空时套用内置演示数据的参数。
func fillDefaultParams(opts *options) {
	if opts.record != "" || opts.object != "" || opts.relationship != "" {
		return
	}
	if opts.sibling {
		opts.record = demoContactID
		opts.object = "Contact"
		opts.relationship = demoRelationship
		opts.parentObject = "Account"
		opts.parentField = "AccountId"
		return
	}
	opts.record = demoAccountID
	opts.object = "Account"
	opts.relationship = demoRelationship
}

func buildService(opts options, logger *zap.Logger) (*app.Service, error) {
	cfg := app.Config{}
	if _, err := os.Stat(opts.configPath); err == nil {
		loaded, err := app.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.parallel > 0 {
		cfg.Components.ParallelRows = opts.parallel
	}

	sc := demoScenario()
	if opts.scenarioPath != "" {
		loaded, err := platform.LoadScenario(opts.scenarioPath)
		if err != nil {
			return nil, err
		}
		sc = loaded
	}

	navigator := nav.NewTemplateNavigator(opts.navBase)
	return app.NewService(cfg, platform.NewStaticClient(sc), navigator, logger)
}

func runOnce(ctx context.Context, svc *app.Service, opts options, cmd string) error {
	vm, err := query(ctx, svc, opts)
	if err != nil {
		return err
	}
	switch cmd {
	case "columns":
		return renderColumns(os.Stdout, vm, opts.format)
	case "rows":
		return renderRows(os.Stdout, vm, opts.format)
	default:
		return renderView(os.Stdout, vm, opts.format)
	}
}

func query(ctx context.Context, svc *app.Service, opts options) (app.ViewModel, error) {
	base := app.Params{
		RecordID:         opts.record,
		ObjectAPIName:    opts.object,
		RelationshipName: opts.relationship,
		RecordTypeID:     opts.recordType,
	}
	if opts.sibling {
		return svc.QuerySibling(ctx, app.SiblingParams{
			Params:              base,
			ParentObjectAPIName: opts.parentObject,
			ParentFieldName:     opts.parentField,
		})
	}
	return svc.QueryDirect(ctx, base)
}

// runWatch 监听场景文件，每次写入后重新加载并渲染完整视图。
func runWatch(ctx context.Context, opts options, logger *zap.Logger) error {
	if opts.scenarioPath == "" {
		return errors.New("watch 需要 -scenario 指定场景文件")
	}
	target, err := filepath.Abs(opts.scenarioPath)
	if err != nil {
		return err
	}

	rerun := func() {
		svc, err := buildService(opts, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "重新加载场景失败: %v\n", err)
			return
		}
		if err := runOnce(ctx, svc, opts, "view"); err != nil {
			fmt.Fprintf(os.Stderr, "渲染失败: %v\n", err)
		}
	}
	rerun()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}
	fmt.Printf("正在监听 %s (Ctrl-C 退出)\n", opts.scenarioPath)

	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			// 编辑器保存常触发连续事件，压一下抖动。
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, rerun)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "监听出错: %v\n", err)
		}
	}
}
