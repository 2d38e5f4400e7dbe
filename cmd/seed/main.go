package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Abdulrehman1978/visionflow/config"
	"github.com/Abdulrehman1978/visionflow/models"
)

// Seeder nạp 3 khóa học mẫu: Java Mastery, C Programming, C++ Zero to Hero.
// Mỗi bài học kèm một quiz và một bài tập thực hành.

type seedLesson struct {
	title    string
	videoID  string
	duration string
}

type seedModule struct {
	title   string
	lessons []seedLesson

	// Quiz và practice áp cho từng bài học trong module, %s thay bằng tiêu đề bài
	quizQuestion  string
	quizOptions   []string
	quizAnswer    string
	practiceStmt  string
	practiceCases []map[string]string
	practiceHints []string
}

type seedCourse struct {
	id          string
	title       string
	description string
	thumbnail   string
	modules     []seedModule
}

func mustJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		log.Fatal("marshal seed data lỗi: ", err)
	}
	return datatypes.JSON(data)
}

var courses = []seedCourse{
	{
		id:          "java",
		title:       "Java Mastery",
		description: "Master Java programming from basics to advanced concepts including OOP, Collections, and Spring Framework.",
		thumbnail:   "https://img.youtube.com/vi/eIrMbAQSU34/maxresdefault.jpg",
		modules: []seedModule{
			{
				title: "Java Basics",
				lessons: []seedLesson{
					{"Introduction to Java", "eIrMbAQSU34", "15:30"},
					{"Variables and Data Types", "le0A7YrSbMo", "12:45"},
					{"Control Flow Statements", "ldYLYRNaucM", "18:20"},
				},
				quizQuestion:  "What is the correct way to declare a variable in Java?",
				quizOptions:   []string{"int x = 5;", "x = 5 int;", "integer x = 5;", "var int x = 5;"},
				quizAnswer:    "int x = 5;",
				practiceStmt:  "Write a Java program that demonstrates %s.",
				practiceCases: []map[string]string{{"input": "5", "expected": "5"}, {"input": "10", "expected": "10"}},
				practiceHints: []string{"Start with public class", "Use System.out.println() for output"},
			},
			{
				title: "Object-Oriented Programming",
				lessons: []seedLesson{
					{"Classes and Objects", "IUqKuGNasdM", "20:15"},
					{"Inheritance", "Zs342eBFQo8", "16:40"},
					{"Polymorphism", "jhDUxynEQRI", "14:55"},
					{"Encapsulation", "jNrduvnMmDc", "11:30"},
				},
				quizQuestion:  "Which keyword is used for inheritance in Java?",
				quizOptions:   []string{"extends", "implements", "inherits", "super"},
				quizAnswer:    "extends",
				practiceStmt:  "Create a class hierarchy demonstrating %s.",
				practiceCases: []map[string]string{{"input": "Animal", "expected": "Dog extends Animal"}},
				practiceHints: []string{"Use the extends keyword", "Override methods as needed"},
			},
			{
				title: "Collections Framework",
				lessons: []seedLesson{
					{"ArrayList and LinkedList", "1nRj4ALuw7A", "17:25"},
					{"HashMap and HashSet", "H62Jfv1DJlU", "19:10"},
					{"Iterators and Streams", "Q93JsQ8vcwY", "22:00"},
				},
				quizQuestion:  "What is the time complexity of adding an element to ArrayList?",
				quizOptions:   []string{"O(1)", "O(n)", "O(log n)", "O(n²)"},
				quizAnswer:    "O(1)",
				practiceStmt:  "Implement a program using %s to store and retrieve data.",
				practiceCases: []map[string]string{{"input": "[1,2,3]", "expected": "3 elements"}},
				practiceHints: []string{"Import java.util.*", "Use add() method to insert elements"},
			},
			{
				title: "Advanced Java",
				lessons: []seedLesson{
					{"Exception Handling", "1XAfapkBQjk", "14:50"},
					{"Multithreading", "r_MbozD32eo", "25:30"},
					{"File I/O", "ScUJx4aWRi0", "18:45"},
				},
				quizQuestion:  "Which class is commonly used for multithreading in Java?",
				quizOptions:   []string{"Thread", "Exception", "File", "Stream"},
				quizAnswer:    "Thread",
				practiceStmt:  "Write a program demonstrating %s concepts.",
				practiceCases: []map[string]string{{"input": "test.txt", "expected": "File processed"}},
				practiceHints: []string{"Use try-catch blocks", "Remember to close resources"},
			},
		},
	},
	{
		id:          "c",
		title:       "C Programming",
		description: "Learn C programming from scratch - pointers, memory management, file handling and more.",
		thumbnail:   "https://img.youtube.com/vi/KJgsSFOSQv0/maxresdefault.jpg",
		modules: []seedModule{
			{
				title: "C Fundamentals",
				lessons: []seedLesson{
					{"Hello World in C", "KJgsSFOSQv0", "8:30"},
					{"Variables and Constants", "aZb0iu4uGwA", "11:20"},
					{"Operators in C", "_r5i5ZtUpUM", "15:45"},
					{"Control Structures", "kyZ6bHS-pIk", "18:10"},
				},
				quizQuestion:  "Which function prints output in C?",
				quizOptions:   []string{"printf()", "print()", "cout<<", "System.out"},
				quizAnswer:    "printf()",
				practiceStmt:  "Write a C program that demonstrates %s.",
				practiceCases: []map[string]string{{"input": "5", "expected": "5"}},
				practiceHints: []string{"Include stdio.h", "Use printf for output"},
			},
			{
				title: "Pointers and Memory",
				lessons: []seedLesson{
					{"Introduction to Pointers", "zuegQmMdy8M", "20:00"},
					{"Pointer Arithmetic", "JTttg85xsbo", "16:30"},
					{"Dynamic Memory Allocation", "xDVC3wKjS64", "22:15"},
					{"Double Pointers", "k6ESk9zafHM", "14:40"},
				},
				quizQuestion:  "What does the * operator do in pointer context?",
				quizOptions:   []string{"Multiplication", "Dereference", "Address-of", "Division"},
				quizAnswer:    "Dereference",
				practiceStmt:  "Implement %s to swap two numbers.",
				practiceCases: []map[string]string{{"input": "a=5, b=10", "expected": "a=10, b=5"}},
				practiceHints: []string{"Use & to get address", "Use * to dereference"},
			},
			{
				title: "File Handling",
				lessons: []seedLesson{
					{"File Operations", "BnYmbpVYx8k", "19:30"},
					{"Reading and Writing Files", "dqnU7dZmPFo", "17:45"},
					{"Binary Files", "x6Q5Y5xv7Xk", "21:00"},
				},
				quizQuestion:  "Which function opens a file in C?",
				quizOptions:   []string{"fopen()", "open()", "file_open()", "openfile()"},
				quizAnswer:    "fopen()",
				practiceStmt:  "Write a program for %s in C.",
				practiceCases: []map[string]string{{"input": "data.txt", "expected": "File processed successfully"}},
				practiceHints: []string{"Use fopen with mode 'r' or 'w'", "Always check if file opened successfully"},
			},
		},
	},
	{
		id:          "cpp",
		title:       "C++ Zero to Hero",
		description: "Complete C++ course covering basics to advanced topics including STL, Templates, and Modern C++ features.",
		thumbnail:   "https://img.youtube.com/vi/vLnPwxZdW4Y/maxresdefault.jpg",
		modules: []seedModule{
			{
				title: "C++ Fundamentals",
				lessons: []seedLesson{
					{"Introduction to C++", "vLnPwxZdW4Y", "12:00"},
					{"Variables and Data Types", "1v_4dL8l8pQ", "14:30"},
					{"Input/Output in C++", "nGJTWaaFdjc", "10:15"},
				},
				quizQuestion:  "What is the correct way to output in C++?",
				quizOptions:   []string{"cout <<", "printf()", "print()", "System.out"},
				quizAnswer:    "cout <<",
				practiceStmt:  "Write a C++ program demonstrating %s.",
				practiceCases: []map[string]string{{"input": "Hello", "expected": "Hello World"}},
				practiceHints: []string{"Include iostream", "Use std::cout or using namespace std"},
			},
			{
				title: "Object-Oriented C++",
				lessons: []seedLesson{
					{"Classes and Objects", "2BP8NhxjrO0", "18:45"},
					{"Constructors and Destructors", "FXhALMsHwEY", "16:20"},
					{"Inheritance in C++", "gq2Igdc-OSI", "20:10"},
					{"Virtual Functions", "oIV2KchSyGQ", "15:30"},
				},
				quizQuestion:  "Which access specifier is default in C++ classes?",
				quizOptions:   []string{"private", "public", "protected", "internal"},
				quizAnswer:    "private",
				practiceStmt:  "Implement a class demonstrating %s.",
				practiceCases: []map[string]string{{"input": "Object", "expected": "Constructor called"}},
				practiceHints: []string{"Use class keyword", "Define constructor with same name as class"},
			},
			{
				title: "Standard Template Library",
				lessons: []seedLesson{
					{"Vectors", "SGyutdso6_c", "17:00"},
					{"Maps and Sets", "V-oc6r_R4P8", "19:30"},
					{"Algorithms", "COQHn8xuEcU", "21:45"},
				},
				quizQuestion:  "Which header is needed for vectors in C++?",
				quizOptions:   []string{"<vector>", "<algorithm>", "<map>", "<set>"},
				quizAnswer:    "<vector>",
				practiceStmt:  "Solve a problem using STL %s.",
				practiceCases: []map[string]string{{"input": "[3,1,2]", "expected": "[1,2,3]"}},
				practiceHints: []string{"Include the appropriate STL header", "Use iterators for traversal"},
			},
			{
				title: "Templates",
				lessons: []seedLesson{
					{"Function Templates", "I-hZkUa9mIs", "14:30"},
					{"Class Templates", "XN319PMv3Bk", "16:45"},
					{"Template Specialization", "H_Gh_lbKuKI", "18:20"},
				},
				quizQuestion:  "What keyword declares a template in C++?",
				quizOptions:   []string{"template", "generic", "typename", "class"},
				quizAnswer:    "template",
				practiceStmt:  "Create a %s that works with multiple data types.",
				practiceCases: []map[string]string{{"input": "int, double", "expected": "Both types work"}},
				practiceHints: []string{"Use template<typename T>", "Templates are defined in header files"},
			},
			{
				title: "Modern C++ (C++11/14/17)",
				lessons: []seedLesson{
					{"Auto and Decltype", "2vOPEuiGXVo", "12:15"},
					{"Lambda Expressions", "mWgmBBz0y8c", "18:40"},
					{"Smart Pointers", "UOB7-B2MfwA", "22:00"},
					{"Move Semantics", "IOkgBrXCtfo", "25:30"},
				},
				quizQuestion:  "Which C++ version introduced lambda expressions?",
				quizOptions:   []string{"C++11", "C++14", "C++17", "C++20"},
				quizAnswer:    "C++11",
				practiceStmt:  "Demonstrate the use of %s in a practical example.",
				practiceCases: []map[string]string{{"input": "test", "expected": "Modern feature working"}},
				practiceHints: []string{"Compile with -std=c++11 or higher", "Check compiler support"},
			},
		},
	},
}

func clearData(db *gorm.DB) error {
	log.Println("Xóa dữ liệu cũ...")
	for _, model := range []interface{}{
		&models.Quiz{},
		&models.PracticeQuestion{},
		&models.UserProgress{},
		&models.Lesson{},
		&models.Module{},
		&models.Course{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedCourses(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, sc := range courses {
			log.Printf("Seeding khóa học: %s", sc.title)

			course := models.Course{
				ID:           sc.id,
				Title:        sc.title,
				Description:  sc.description,
				ThumbnailURL: sc.thumbnail,
				Level:        "Beginner",
				IsGenerated:  false,
			}
			if err := tx.Create(&course).Error; err != nil {
				return err
			}

			for mi, sm := range sc.modules {
				mod := models.Module{
					CourseID:   sc.id,
					Title:      sm.title,
					OrderIndex: mi + 1,
				}
				if err := tx.Create(&mod).Error; err != nil {
					return err
				}

				for li, sl := range sm.lessons {
					lesson := models.Lesson{
						ModuleID:   mod.ID,
						Title:      sl.title,
						VideoID:    sl.videoID,
						Duration:   sl.duration,
						OrderIndex: li + 1,
					}
					if err := tx.Create(&lesson).Error; err != nil {
						return err
					}

					quiz := models.Quiz{
						LessonID:      lesson.ID,
						Question:      sm.quizQuestion,
						Options:       mustJSON(sm.quizOptions),
						CorrectAnswer: sm.quizAnswer,
					}
					if err := tx.Create(&quiz).Error; err != nil {
						return err
					}

					practice := models.PracticeQuestion{
						LessonID:         lesson.ID,
						ProblemStatement: fmt.Sprintf(sm.practiceStmt, sl.title),
						TestCases:        mustJSON(sm.practiceCases),
						Hints:            mustJSON(sm.practiceHints),
					}
					if err := tx.Create(&practice).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Không tìm thấy file .env")
	}

	config.InitDB()
	db := config.DB

	if err := clearData(db); err != nil {
		log.Fatal("Xóa dữ liệu cũ lỗi: ", err)
	}

	if err := seedCourses(db); err != nil {
		log.Fatal("Seed dữ liệu lỗi: ", err)
	}

	var courseCount, moduleCount, lessonCount, quizCount, practiceCount int64
	db.Model(&models.Course{}).Count(&courseCount)
	db.Model(&models.Module{}).Count(&moduleCount)
	db.Model(&models.Lesson{}).Count(&lessonCount)
	db.Model(&models.Quiz{}).Count(&quizCount)
	db.Model(&models.PracticeQuestion{}).Count(&practiceCount)

	log.Println("SEEDING COMPLETE!")
	log.Printf("  Courses: %d", courseCount)
	log.Printf("  Modules: %d", moduleCount)
	log.Printf("  Lessons: %d", lessonCount)
	log.Printf("  Quizzes: %d", quizCount)
	log.Printf("  Practice Questions: %d", practiceCount)
}
