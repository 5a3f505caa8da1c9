package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"organising-events-app/config"
	"organising-events-app/internal/api/event"
	"organising-events-app/internal/api/feed"
	"organising-events-app/internal/api/post"
	"organising-events-app/internal/api/search"
	"organising-events-app/internal/api/task"
	"organising-events-app/internal/api/user"
	"organising-events-app/internal/middleware"
	"organising-events-app/internal/repository/mongodb"
	"organising-events-app/internal/scheduler"
	"organising-events-app/internal/service"
	"organising-events-app/internal/storage"
	"organising-events-app/internal/util"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 连接文档库
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.MongoURI))
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			util.Logger.Error("断开数据库连接失败", zap.Error(err))
		}
	}()

	// 测试数据库连接
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db := client.Database(config.AppConfig.MongoDatabase)

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("future_date", util.ValidateFutureDate)
		v.RegisterValidation("image_url", util.ValidateImageURL)
	}

	// 初始化存储后端
	fileStorage, err := storage.NewFromConfig()
	if err != nil {
		util.Logger.Fatal("初始化文件存储失败", zap.Error(err))
	}

	// 初始化存储库、服务和处理器
	userRepo := mongodb.NewUserRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	postRepo := mongodb.NewPostRepository(db)

	taskScheduler := scheduler.NewHTTPScheduler(config.AppConfig.TaskQueueURL, config.AppConfig.TaskQueueToken)
	emailService := service.NewEmailService()

	userService := service.NewUserService(userRepo, eventRepo)
	eventService := service.NewEventService(eventRepo, userRepo, taskScheduler, emailService)
	postService := service.NewPostService(postRepo, eventRepo, userRepo)
	searchService := service.NewSearchService(userRepo, eventRepo)

	userHandler := user.NewUserHandler(userService, fileStorage)
	eventHandler := event.NewEventHandler(eventService, userService, fileStorage)
	postHandler := post.NewPostHandler(postService, userService)
	searchHandler := search.NewSearchHandler(searchService, userService)
	feedHandler := feed.NewFeedHandler(searchService, userService)
	taskHandler := task.NewTaskHandler(eventService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.Default()

	// 添加中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length",
		"Content-Type",
		"Access-Control-Allow-Origin",
	}
	r.Use(cors.New(corsConfig))

	// 静态文件的CORS单独处理
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			c.Header("Access-Control-Allow-Origin", config.AppConfig.FrontendURL)
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type")

			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(200)
				return
			}
		}
		c.Next()
	})

	// 本地存储时由后端直接提供上传的图片
	if config.AppConfig.StorageBackend == "local" {
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	// 任务队列回调路由，用共享令牌鉴权
	tasks := r.Group("/tasks")
	tasks.Use(taskHandler.VerifyToken())
	{
		tasks.GET("/change_status_to_present", taskHandler.ChangeStatusToPresent)
		tasks.GET("/change_status_to_past", taskHandler.ChangeStatusToPast)
	}

	// 其余路由都需要身份令牌
	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 用户相关路由
		authorized.POST("/user", userHandler.Register)
		authorized.GET("/user/:user_id", userHandler.GetUser)
		authorized.PATCH("/user/:user_id", userHandler.EditUser)
		authorized.DELETE("/user/:user_id", userHandler.DeleteUser)
		authorized.POST("/user/:user_id/follow", userHandler.FollowUser)
		authorized.GET("/user/:user_id/followers", userHandler.Followers)
		authorized.GET("/user/:user_id/following", userHandler.Following)
		authorized.GET("/user/:user_id/organised_events", userHandler.OrganisedEvents)
		authorized.GET("/user/:user_id/attending_events", userHandler.AttendingEvents)
		authorized.GET("/user/:user_id/declined_events", userHandler.DeclinedEvents)
		authorized.GET("/user/:user_id/visited_events", userHandler.VisitedEvents)
		authorized.POST("/profile/picture", userHandler.UploadProfilePicture)

		// 事件相关路由
		authorized.POST("/event", eventHandler.CreateEvent)
		authorized.GET("/event/:event_id", eventHandler.GetEvent)
		authorized.PATCH("/event/:event_id", eventHandler.EditEvent)
		authorized.DELETE("/event/:event_id", eventHandler.DeleteEvent)
		authorized.POST("/event/:event_id/invite", eventHandler.InviteUsers)
		authorized.POST("/event/:event_id/attend", eventHandler.AttendEvent)
		authorized.POST("/event/:event_id/decline", eventHandler.DeclineEvent)
		authorized.POST("/event/:event_id/came", eventHandler.CameToEvent)
		authorized.POST("/event/:event_id/leave", eventHandler.LeaveEvent)
		authorized.GET("/event/:event_id/guest_list", eventHandler.GuestList)
		authorized.GET("/event/:event_id/attendees", eventHandler.Attendees)
		authorized.GET("/event/:event_id/showed_up", eventHandler.ShowedUp)
		authorized.GET("/event/:event_id/left", eventHandler.LeftEarly)
		authorized.POST("/event/:event_id/picture", eventHandler.UploadEventPicture)

		// 动态墙相关路由
		authorized.POST("/event/:event_id/post", postHandler.CreatePost)
		authorized.GET("/event/:event_id/posts", postHandler.EventPosts)

		// 搜索和事件流
		authorized.GET("/search/users", searchHandler.SearchUsers)
		authorized.GET("/search/events", searchHandler.SearchEvents)
		authorized.GET("/feed", feedHandler.Feed)
	}

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动，监听端口 :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}
