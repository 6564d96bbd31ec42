package seeds

import "github.com/N4171k/45DOC/internal/models"

type baseDay struct {
	description string
	questions   []models.Question
}

// baseDays is the fifteen-day rotation the 45-day calendar repeats.
var baseDays = []baseDay{
	{
		description: "Solve three challenges of varying difficulty to test your skills.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Two Sum", Description: "Given an array of integers, return indices of the two numbers such that they add up to a specific target.", Link: "https://leetcode.com/problems/two-sum/"},
			{Difficulty: models.DifficultyMedium, Title: "Reverse a String", Description: "Write a function that reverses a string.", Link: "https://www.codechef.com/problems/FLOW007"},
			{Difficulty: models.DifficultyHard, Title: "Palindrome Check", Description: "Write a function that checks if a string is a palindrome.", Link: "https://leetcode.com/problems/palindromic-substrings/"},
		},
	},
	{
		description: "A new set of challenges to sharpen your problem-solving abilities.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "FizzBuzz", Description: "Print numbers from 1 to 100, but for multiples of three print \"Fizz\" and for multiples of five print \"Buzz\". For numbers which are multiples of both, print \"FizzBuzz\".", Link: "https://leetcode.com/problems/fizz-buzz/"},
			{Difficulty: models.DifficultyMedium, Title: "Find Max Number", Description: "Find the maximum number in an array of numbers.", Link: "https://www.codechef.com/problems/FLOW014"},
			{Difficulty: models.DifficultyHard, Title: "Anagram Checker", Description: "Check if two strings are anagrams of each other.", Link: "https://leetcode.com/problems/valid-anagram/"},
		},
	},
	{
		description: "Test your logic with these problems.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Count Vowels", Description: "Count the number of vowels in a given string.", Link: "https://www.codechef.com/problems/VOWELTB"},
			{Difficulty: models.DifficultyMedium, Title: "Fibonacci Sequence", Description: "Generate the Fibonacci sequence up to n numbers.", Link: "https://leetcode.com/problems/fibonacci-number/"},
			{Difficulty: models.DifficultyHard, Title: "Implement a Queue", Description: "Implement a Queue data structure using an array or linked list.", Link: "https://leetcode.com/problems/implement-queue-using-stacks/"},
		},
	},
	{
		description: "Data structures and algorithms practice.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Implement a Stack", Description: "Implement a Stack data structure.", Link: "https://leetcode.com/problems/implement-stack-using-queues/"},
			{Difficulty: models.DifficultyMedium, Title: "Binary Search", Description: "Implement the binary search algorithm.", Link: "https://leetcode.com/problems/binary-search/"},
			{Difficulty: models.DifficultyHard, Title: "Merge Sorted Arrays", Description: "Merge two sorted arrays into one sorted array.", Link: "https://leetcode.com/problems/merge-sorted-array/"},
		},
	},
	{
		description: "Array manipulation challenges.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Find Missing Number", Description: "Given an array containing n distinct numbers taken from 0, 1, 2, ..., n, find the one that is missing.", Link: "https://leetcode.com/problems/missing-number/"},
			{Difficulty: models.DifficultyMedium, Title: "Linked List Cycle", Description: "Determine if a linked list has a cycle in it.", Link: "https://leetcode.com/problems/linked-list-cycle/"},
			{Difficulty: models.DifficultyHard, Title: "Debounce Function", Description: "Implement a debounce function in JavaScript.", Link: "https://leetcode.com/problems/debounce/"},
		},
	},
	{
		description: "String and array problems.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Find First Non-Repeating Char", Description: "Find the first non-repeating character in a string.", Link: "https://leetcode.com/problems/first-unique-character-in-a-string/"},
			{Difficulty: models.DifficultyMedium, Title: "Rotate Array", Description: "Rotate an array to the right by k steps.", Link: "https://leetcode.com/problems/rotate-array/"},
			{Difficulty: models.DifficultyHard, Title: "Validate Subsequence", Description: "Check if an array is a subsequence of another.", Link: "https://leetcode.com/problems/is-subsequence/"},
		},
	},
	{
		description: "Classic algorithm challenges.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Caesar Cipher Encryptor", Description: "Implement a Caesar cipher.", Link: "https://www.codechef.com/problems/ENCODING"},
			{Difficulty: models.DifficultyMedium, Title: "Longest Palindromic Substring", Description: "Find the longest palindromic substring in a string.", Link: "https://leetcode.com/problems/longest-palindromic-substring/"},
			{Difficulty: models.DifficultyHard, Title: "Invert Binary Tree", Description: "Invert a binary tree.", Link: "https://leetcode.com/problems/invert-binary-tree/"},
		},
	},
	{
		description: "Challenges on dynamic programming and arrays.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Max Subset Sum No Adjacent", Description: "Find the maximum sum of non-adjacent elements.", Link: "https://leetcode.com/problems/house-robber/"},
			{Difficulty: models.DifficultyMedium, Title: "Move Element To End", Description: "Move all instances of an element in an array to the end.", Link: "https://leetcode.com/problems/move-zeroes/"},
			{Difficulty: models.DifficultyHard, Title: "Spiral Traverse", Description: "Traverse a 2D array in a spiral order.", Link: "https://leetcode.com/problems/spiral-matrix/"},
		},
	},
	{
		description: "String and array manipulation.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Valid IP Addresses", Description: "Generate all valid IP addresses from a string.", Link: "https://leetcode.com/problems/restore-ip-addresses/"},
			{Difficulty: models.DifficultyMedium, Title: "Group Anagrams", Description: "Group a list of strings into anagrams.", Link: "https://leetcode.com/problems/group-anagrams/"},
			{Difficulty: models.DifficultyHard, Title: "Longest Substring Without Duplication", Description: "Find the longest substring without duplicate characters.", Link: "https://leetcode.com/problems/longest-substring-without-repeating-characters/"},
		},
	},
	{
		description: "Coin problems and more.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Min Number Of Coins For Change", Description: "Find the minimum number of coins to make change.", Link: "https://leetcode.com/problems/coin-change/"},
			{Difficulty: models.DifficultyMedium, Title: "Number Of Ways To Make Change", Description: "Find the number of ways to make change for a given amount.", Link: "https://leetcode.com/problems/coin-change-2/"},
			{Difficulty: models.DifficultyHard, Title: "Water Area", Description: "Calculate the amount of water that can be trapped between bars.", Link: "https://leetcode.com/problems/trapping-rain-water/"},
		},
	},
	{
		description: "Array and graph problems.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Kadane's Algorithm", Description: "Find the maximum sum of a contiguous subarray.", Link: "https://leetcode.com/problems/maximum-subarray/"},
			{Difficulty: models.DifficultyMedium, Title: "Single Cycle Check", Description: "Check if an array has a single cycle.", Link: "https://www.codechef.com/problems/SINGLECYCLE"},
			{Difficulty: models.DifficultyHard, Title: "Breadth-first Search", Description: "Implement Breadth-first Search on a graph.", Link: "https://leetcode.com/problems/binary-tree-level-order-traversal/"},
		},
	},
	{
		description: "Matrix and tree problems.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "River Sizes", Description: "Find the sizes of all \"rivers\" in a 2D matrix.", Link: "https://leetcode.com/problems/number-of-islands/"},
			{Difficulty: models.DifficultyMedium, Title: "Youngest Common Ancestor", Description: "Find the youngest common ancestor in an ancestral tree.", Link: "https://leetcode.com/problems/lowest-common-ancestor-of-a-binary-tree/"},
			{Difficulty: models.DifficultyHard, Title: "Min Heap Construction", Description: "Implement a Min Heap.", Link: "https://leetcode.com/problems/kth-largest-element-in-a-stream/"},
		},
	},
	{
		description: "Linked list and permutation challenges.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Remove Kth Node From End", Description: "Remove the Kth node from the end of a linked list.", Link: "https://leetcode.com/problems/remove-nth-node-from-end-of-list/"},
			{Difficulty: models.DifficultyMedium, Title: "Permutations", Description: "Find all permutations of a set of numbers.", Link: "https://leetcode.com/problems/permutations/"},
			{Difficulty: models.DifficultyHard, Title: "Powerset", Description: "Find the powerset of a set.", Link: "https://leetcode.com/problems/subsets/"},
		},
	},
	{
		description: "Matrix and array search problems.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Search In Sorted Matrix", Description: "Search for a value in a sorted matrix.", Link: "https://leetcode.com/problems/search-a-2d-matrix/"},
			{Difficulty: models.DifficultyMedium, Title: "Longest Peak", Description: "Find the longest peak in an array.", Link: "https://leetcode.com/problems/peak-index-in-a-mountain-array/"},
			{Difficulty: models.DifficultyHard, Title: "BST Traversal", Description: "Implement in-order, pre-order, and post-order traversal for a BST.", Link: "https://leetcode.com/problems/binary-tree-inorder-traversal/"},
		},
	},
	{
		description: "Binary Search Tree challenges.",
		questions:   []models.Question{
			{Difficulty: models.DifficultyEasy, Title: "Validate BST", Description: "Validate if a binary tree is a valid Binary Search Tree.", Link: "https://leetcode.com/problems/validate-binary-search-tree/"},
			{Difficulty: models.DifficultyMedium, Title: "Same BSTs", Description: "Check if two arrays represent the same BST.", Link: "https://www.codechef.com/problems/SAMEBSTS"},
			{Difficulty: models.DifficultyHard, Title: "Max Path Sum in Binary Tree", Description: "Find the maximum path sum in a binary tree.", Link: "https://leetcode.com/problems/binary-tree-maximum-path-sum/"},
		},
	},
}
